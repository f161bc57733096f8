package logger

import (
	"log/slog"
	"regexp"
	"strings"
)

// RedactionMask replaces the value of every redacted attribute.
const RedactionMask = "***"

// DefaultRedactedKeys lists the attributes that carry personal data or secrets.
var DefaultRedactedKeys = []string{
	"email",
	"password",
	"hashed_password",
	"reset_token",
	"session_id",
	"authorization",
}

func redactAttr(keys map[string]struct{}) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if _, ok := keys[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, RedactionMask)
		}
		return a
	}
}

// RedactString obfuscates "field=value" pairs in message, where pairs are
// terminated by separator. Values of the listed fields are replaced by redaction.
//
//	RedactString([]string{"email"}, "xxx", "name=bob;email=bob@dylan.com;", ";")
//	// name=bob;email=xxx;
func RedactString(fields []string, redaction, message, separator string) string {
	if len(fields) == 0 || message == "" {
		return message
	}

	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			quoted = append(quoted, regexp.QuoteMeta(f))
		}
	}
	if len(quoted) == 0 {
		return message
	}

	valuePattern := ".*"
	if separator != "" {
		valuePattern = "[^" + regexp.QuoteMeta(separator) + "]*"
	}

	re := regexp.MustCompile("(" + strings.Join(quoted, "|") + ")=" + valuePattern)
	return re.ReplaceAllString(message, "${1}="+strings.ReplaceAll(redaction, "$", "$$"))
}
