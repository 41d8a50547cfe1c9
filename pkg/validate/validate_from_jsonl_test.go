package validate

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestValidateJSONLStream_MixedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"customer_name":"A","customer_phone":"1","items":[{"name":"x","price":10,"quantity":1}]}`,
		``, // пустая строка пропускается
		`not-a-json`,
		`{"customer_name":"","customer_phone":"2","items":[{"name":"y","price":5,"quantity":1}]}`,
		`{"customer_name":"B","customer_phone":"3","items":[{"name":"z","price":7,"quantity":2}]}`,
	}, "\n")

	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewOrderValidator(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("want 2 valid / 2 invalid, got %d / %d", res.ValidLinesCount, res.InvalidLinesCount)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 output lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"customer_name":"A"`) || !strings.Contains(lines[1], `"customer_name":"B"`) {
		t.Fatalf("output order mismatch: %q", out.String())
	}
}

func TestValidateJSONLStream_Empty(t *testing.T) {
	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewOrderValidator(), strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 0 || res.InvalidLinesCount != 0 {
		t.Fatalf("want empty result, got %+v", res)
	}
	if out.Len() != 0 {
		t.Fatalf("want empty output, got %q", out.String())
	}
}
