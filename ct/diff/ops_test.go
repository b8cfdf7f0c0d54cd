package diff

import (
	"strings"
	"testing"

	. "github.com/Zeegaths/keth/ct/common"
)

func TestResult_StringUsesDecimalForSmallValues(t *testing.T) {
	small := Result{Value: NewU256(123456)}
	if !strings.Contains(small.String(), "123456") {
		t.Errorf("small value not rendered in decimal: %s", small)
	}
	wide := Result{Value: MaxU256()}
	if !strings.Contains(wide.String(), MaxU256().String()) {
		t.Errorf("wide value not rendered in hex: %s", wide)
	}
}
