package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"crm-insights/internal/model"
	"crm-insights/pkg/utils"
)

// ErrNoCustomerCode is returned when neither the first customer sender nor the
// upload filename carries a 12-digit customer code.
var ErrNoCustomerCode = errors.New("no 12-digit customer code found")

// headerLines is the fixed preamble every conversation export starts with.
const headerLines = 4

// Identity is the customer identity extracted from a conversation export.
type Identity struct {
	Code         string // full 12-digit code: YYYYMMDD + 4-digit sequence
	ShortCode    string // the 4-digit per-day sequence
	Name         string
	Product      string
	RegisteredAt time.Time
}

// Message is one parsed conversation line.
type Message struct {
	Role      string
	Sender    string
	Timestamp time.Time
	Content   string
	Hash      string
}

// ParsedConversation is the pure result of parsing one export; persistence is
// the caller's responsibility.
type ParsedConversation struct {
	Identity     Identity
	Messages     []Message
	TotalRecords int
	CannedCount  int
}

var (
	customerCodeRe = regexp.MustCompile(`^(\d{12})`)
	honorificRe    = regexp.MustCompile(`^(\p{Han}{1,4})(先生|小姐|女士|太太|老師|經理|老闆)`)
	bareNameRe     = regexp.MustCompile(`^(\p{Han}{2,3})`)
)

// productKeywords are first characters of common product names; a 3-character
// name ending in one of these is really a 2-character name followed by the
// product.
var productKeywords = map[rune]bool{
	'機': true,
	'鍋': true,
	'爐': true,
	'餃': true,
	'麵': true,
	'米': true,
	'茶': true,
	'包': true,
}

// cannedMessages are auto-generated placeholder lines, dropped before hashing
// and never persisted.
var cannedMessages = []string{
	"[照片]", "[貼圖]", "[影片]", "[語音訊息]", "[檔案]", "[連結]",
	"照片已傳送", "貼圖已傳送", "影片已傳送", "語音訊息已傳送", "檔案已傳送",
	"Photo sent", "Sticker sent", "Video sent", "Voice message sent", "File sent",
}

var timestampLayouts = []string{
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseConversation extracts structured records from a raw conversation
// export. The first four lines are boilerplate and skipped; every remaining
// non-blank line is a quote-aware comma-delimited record of
// role, sender, date, time, content. Malformed lines are skipped silently.
func ParseConversation(raw []byte, filename string) (*ParsedConversation, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) > headerLines {
		lines = lines[headerLines:]
	} else {
		lines = nil
	}

	result := &ParsedConversation{}
	loc := utils.GetTaipeiLocation()
	firstCustomerSender := ""

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitRecordLine(line)
		if len(fields) < 5 {
			continue
		}

		role := strings.TrimSpace(fields[0])
		sender := strings.TrimSpace(fields[1])
		dateStr := strings.TrimSpace(fields[2])
		timeStr := strings.TrimSpace(fields[3])
		content := strings.Join(fields[4:], ",")

		ts, ok := parseTimestamp(dateStr, timeStr, loc)
		if !ok {
			continue
		}

		result.TotalRecords++

		normalizedRole := model.RoleOperator
		if role == "User" {
			normalizedRole = model.RoleCustomer
			if firstCustomerSender == "" {
				firstCustomerSender = sender
			}
		}

		content = utils.CleanToValidUTF8(strings.TrimSpace(content))
		if isCannedMessage(content) {
			result.CannedCount++
			continue
		}

		result.Messages = append(result.Messages, Message{
			Role:      normalizedRole,
			Sender:    sender,
			Timestamp: ts,
			Content:   content,
		})
	}

	identity, ok := ExtractIdentity(firstCustomerSender)
	if !ok {
		identity, ok = ExtractIdentity(baseName(filename))
	}
	if !ok {
		return nil, ErrNoCustomerCode
	}
	result.Identity = identity

	for i := range result.Messages {
		result.Messages[i].Hash = MessageHash(identity.Code, result.Messages[i].Timestamp, result.Messages[i].Content)
	}

	return result, nil
}

// ExtractIdentity scans a sender name or filename for a leading 12-digit code
// followed by an optional honorific-terminated or bare CJK name; the remainder
// is the product name.
func ExtractIdentity(s string) (Identity, bool) {
	m := customerCodeRe.FindStringSubmatch(s)
	if m == nil {
		return Identity{}, false
	}

	code := m[1]
	rest := s[len(code):]

	identity := Identity{
		Code:      code,
		ShortCode: code[8:],
	}
	if reg, err := time.ParseInLocation("20060102", code[:8], utils.GetTaipeiLocation()); err == nil {
		identity.RegisteredAt = reg
	}

	if hm := honorificRe.FindStringSubmatch(rest); hm != nil {
		identity.Name = hm[1]
		identity.Product = strings.TrimSpace(rest[len(hm[0]):])
	} else if bm := bareNameRe.FindStringSubmatch(rest); bm != nil {
		identity.Name = bm[1]
		identity.Product = strings.TrimSpace(rest[len(bm[0]):])
	}

	// A 3-character "name" whose last character starts a known product word is
	// a 2-character name plus product.
	nameRunes := []rune(identity.Name)
	if len(nameRunes) == 3 && productKeywords[nameRunes[2]] {
		identity.Name = string(nameRunes[:2])
		identity.Product = string(nameRunes[2]) + identity.Product
	}

	return identity, true
}

// MessageHash is the deterministic dedup digest over customer code, timestamp
// and content. Re-importing an identical export yields identical hashes.
func MessageHash(customerCode string, ts time.Time, content string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", customerCode, ts.Format(time.RFC3339), content)))
	return hex.EncodeToString(sum[:])
}

// splitRecordLine splits on commas with quote-aware escaping; a doubled quote
// inside a quoted field is a literal quote.
func splitRecordLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())

	return fields
}

func parseTimestamp(dateStr, timeStr string, loc *time.Location) (time.Time, bool) {
	combined := dateStr + " " + timeStr
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, combined, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isCannedMessage(content string) bool {
	return utils.ContainsString(cannedMessages, content)
}

func baseName(filename string) string {
	base := filename
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
