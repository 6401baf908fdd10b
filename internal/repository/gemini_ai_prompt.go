package repository

import (
	"fmt"
	"strings"

	"crm-insights/internal/model"
)

func (r *geminiAIRepository) promptAnalyzeCustomer(
	customer *model.Customer,
	interactions []model.Interaction,
	transcriptions []model.Transcription,
) string {
	var sb strings.Builder

	sb.WriteString("你是一位專業的 B2B 業務分析 AI，請根據以下客戶的對話紀錄與通話逐字稿，產出一份結構化的銷售分析。\n\n")

	sb.WriteString(fmt.Sprintf("### 客戶資料\n客戶編號: %s\n客戶名稱: %s\n詢問產品: %s\n\n",
		customer.Code, customer.Name, customer.Product))

	sb.WriteString(`### 分析任務
1. 給出六個雷達指標，每項為 0-10 的整數：purchase_intent（購買意願）、budget_clarity（預算明確度）、decision_authority（決策權力）、need_urgency（需求急迫性）、trust_level（信任程度）、engagement（互動積極度）。
2. 整理客戶輪廓（customer_insight）：個性、溝通風格與摘要。
3. 整理產品層面（product_insight）：感興趣的產品與主要疑慮。
4. 判斷決策結構（decision_structure）：決策者、影響者與決策流程。
5. 產出銷售分析（sales_analysis）：成交機率 closing_probability 為 0-100 的整數、客戶顧慮、我方優勢與劣勢、建議策略與下一步行動。
6. 最後撰寫 detailed_report：一份 Markdown 格式的完整分析報告。
`)

	sb.WriteString(`
### 輸出格式（必須是單一 JSON 物件，不得附加其他文字；detailed_report 必須是最後一個欄位）:
{
  "radar_scores": {
    "purchase_intent": 0,
    "budget_clarity": 0,
    "decision_authority": 0,
    "need_urgency": 0,
    "trust_level": 0,
    "engagement": 0
  },
  "customer_insight": {
    "summary": "",
    "personality": "",
    "communication_style": ""
  },
  "product_insight": {
    "interests": [],
    "objections": []
  },
  "decision_structure": {
    "decision_maker": "",
    "influencers": [],
    "process": ""
  },
  "sales_analysis": {
    "closing_probability": 0,
    "concerns": [],
    "strengths": [],
    "weaknesses": [],
    "recommended_strategy": "",
    "next_steps": []
  },
  "detailed_report": ""
}
`)

	sb.WriteString("\n### 對話紀錄\n")
	for _, it := range interactions {
		role := "客戶"
		if it.Role == model.RoleOperator {
			role = "業務"
		}
		sb.WriteString(fmt.Sprintf("[%s] %s (%s): %s\n",
			it.Timestamp.Format("2006-01-02 15:04"), role, it.Sender, it.Content))
	}

	if len(transcriptions) > 0 {
		sb.WriteString("\n### 通話逐字稿\n")
		for i, tr := range transcriptions {
			sb.WriteString(fmt.Sprintf("--- 通話 %d ---\n%s\n", i+1, tr.Text))
		}
	}

	return sb.String()
}
