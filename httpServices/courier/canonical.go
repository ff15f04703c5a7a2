package httpServices

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Canonical renders a payload as deterministic JSON: object keys sorted
// recursively, arrays element-wise, fixed separators, no whitespace. The
// provider verifies signatures against this exact form, so the signer and
// the tests share this one implementation.
func Canonical(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := writeCanonical(&sb, tree); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeCanonical(sb *strings.Builder, v interface{}) error {
	switch t := v.(type) {
	case nil:
		sb.WriteString("null")
	case json.Number:
		sb.WriteString(t.String())
	case bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case string:
		enc, err := json.Marshal(t)
		if err != nil {
			return err
		}
		sb.Write(enc)
	case []interface{}:
		sb.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeCanonical(sb, e); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			enc, err := json.Marshal(k)
			if err != nil {
				return err
			}
			sb.Write(enc)
			sb.WriteByte(':')
			if err := writeCanonical(sb, t[k]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported payload value %T", v)
	}
	return nil
}

// Sign computes the request signature: an MD5 digest over the
// concatenation of app key, method name, protocol version, canonical
// payload and app secret, uppercase hex encoded.
func Sign(payload interface{}, method, version, appSecret, appKey string) (string, error) {
	paramStr, err := Canonical(payload)
	if err != nil {
		return "", err
	}
	signBase := appKey + method + version + paramStr + appSecret
	sum := md5.Sum([]byte(signBase))
	return strings.ToUpper(fmt.Sprintf("%x", sum)), nil
}

// Mask hides the middle of a credential: values longer than six characters
// keep their first and last three characters around a fixed mask, shorter
// values are masked entirely.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 6 {
		return strings.Repeat("*", len(value))
	}
	return value[:3] + "***" + value[len(value)-3:]
}
