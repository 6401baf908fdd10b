package parser

import (
	"strings"
	"testing"
	"time"

	"crm-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = "對話紀錄\n匯出時間: 2025/09/02 08:00\n\n角色,名稱,日期,時間,內容\n"

func TestParseConversation_CustomerIdentity(t *testing.T) {
	raw := exportHeader +
		"User,202509010007王小明詢問水餃機,2025/09/01,10:00:00,你好\n" +
		"Admin,客服小美,2025/09/01,10:01:00,您好，請問需要什麼服務？\n" +
		"User,202509010007王小明詢問水餃機,2025/09/01,10:02:00,想詢問水餃機的價格\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)

	assert.Equal(t, "202509010007", result.Identity.Code)
	assert.Equal(t, "0007", result.Identity.ShortCode)
	assert.Equal(t, "王小明", result.Identity.Name)
	assert.Equal(t, "詢問水餃機", result.Identity.Product)
	assert.Equal(t, 2025, result.Identity.RegisteredAt.Year())
	assert.Equal(t, time.September, result.Identity.RegisteredAt.Month())
	assert.Equal(t, 1, result.Identity.RegisteredAt.Day())

	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 0, result.CannedCount)
	require.Len(t, result.Messages, 3)

	assert.Equal(t, model.RoleCustomer, result.Messages[0].Role)
	assert.Equal(t, model.RoleOperator, result.Messages[1].Role)
	assert.Equal(t, "想詢問水餃機的價格", result.Messages[2].Content)

	seen := map[string]bool{}
	for _, m := range result.Messages {
		assert.NotEmpty(t, m.Hash)
		assert.False(t, seen[m.Hash], "hashes must be unique per message")
		seen[m.Hash] = true
	}
}

func TestParseConversation_CannedMessagesFiltered(t *testing.T) {
	raw := exportHeader +
		"User,202509010007王小明,2025/09/01,10:00:00,[貼圖]\n" +
		"User,202509010007王小明,2025/09/01,10:01:00,Photo sent\n" +
		"User,202509010007王小明,2025/09/01,10:02:00,真的想買\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 2, result.CannedCount)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "真的想買", result.Messages[0].Content)
}

func TestParseConversation_MalformedLinesSkipped(t *testing.T) {
	raw := exportHeader +
		"User,202509010007王小明\n" + // too few fields
		"User,202509010007王小明,not-a-date,10:00,hello\n" + // bad timestamp
		"User,202509010007王小明,2025/09/01,10:00:00,有效訊息\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalRecords)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "有效訊息", result.Messages[0].Content)
}

func TestParseConversation_QuotedFields(t *testing.T) {
	raw := exportHeader +
		`User,202509010007王小明,2025/09/01,10:00:00,"他說:""好的, 謝謝"""` + "\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, `他說:"好的, 謝謝"`, result.Messages[0].Content)
}

func TestParseConversation_UnquotedCommaInContent(t *testing.T) {
	raw := exportHeader +
		"User,202509010007王小明,2025/09/01,10:00:00,想買水餃機,請報價\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "想買水餃機,請報價", result.Messages[0].Content)
}

func TestParseConversation_IdentityFromFilename(t *testing.T) {
	raw := exportHeader +
		"User,王小明,2025/09/01,10:00:00,你好\n"

	result, err := ParseConversation([]byte(raw), "202509010007王小明.csv")
	require.NoError(t, err)

	assert.Equal(t, "202509010007", result.Identity.Code)
	assert.Equal(t, "王小明", result.Identity.Name)
}

func TestParseConversation_NoCustomerCode(t *testing.T) {
	raw := exportHeader +
		"User,王小明,2025/09/01,10:00:00,你好\n"

	_, err := ParseConversation([]byte(raw), "export.csv")
	assert.ErrorIs(t, err, ErrNoCustomerCode)
}

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOK      bool
		wantName    string
		wantProduct string
	}{
		{
			name:        "bare 3-char name with product",
			input:       "202509010007王小明詢問水餃機",
			wantOK:      true,
			wantName:    "王小明",
			wantProduct: "詢問水餃機",
		},
		{
			name:        "honorific terminated name",
			input:       "202509010008陳大文先生水餃機",
			wantOK:      true,
			wantName:    "陳大文",
			wantProduct: "水餃機",
		},
		{
			name:        "3-char capture ending in product keyword truncates to 2",
			input:       "202509010009林小機器人",
			wantOK:      true,
			wantName:    "林小",
			wantProduct: "機器人",
		},
		{
			name:     "code only",
			input:    "202509010010",
			wantOK:   true,
			wantName: "",
		},
		{
			name:   "no code",
			input:  "王小明",
			wantOK: false,
		},
		{
			name:   "code not leading",
			input:  "王小明202509010007",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, ok := ExtractIdentity(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, identity.Name)
				assert.Equal(t, tt.wantProduct, identity.Product)
			}
		})
	}
}

func TestMessageHash_Deterministic(t *testing.T) {
	ts := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	h1 := MessageHash("202509010007", ts, "你好")
	h2 := MessageHash("202509010007", ts, "你好")
	h3 := MessageHash("202509010007", ts, "你好嗎")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestSplitRecordLine(t *testing.T) {
	fields := splitRecordLine(`a,"b,c",d,"e""f"`)
	assert.Equal(t, []string{"a", "b,c", "d", `e"f`}, fields)
}

func TestParseConversation_CRLFAndBlankLines(t *testing.T) {
	raw := strings.ReplaceAll(exportHeader, "\n", "\r\n") +
		"\r\n" +
		"User,202509010007王小明,2025/09/01,10:00:00,你好\r\n"

	result, err := ParseConversation([]byte(raw), "export.csv")
	require.NoError(t, err)
	assert.Len(t, result.Messages, 1)
}
