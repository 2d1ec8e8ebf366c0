package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/narrowlab/internal/patsyntax"
)

func TestNew_CapturesSpan(t *testing.T) {
	node := &patsyntax.Capture{Base: patsyntax.Base{NodeID: 1, NodeSpan: patsyntax.Pos{Line: 3, Column: 5}}}
	r := New(PatternNeverMatches, "pattern never matches", node, nil)

	require.NotNil(t, r.Span)
	assert.Equal(t, 3, r.Span.Line)
	assert.Equal(t, "pattern", r.Phase)
}

func TestNew_NilNodeOmitsSpan(t *testing.T) {
	r := New(TypeNotClassInPattern, "not a class", nil, nil)
	assert.Nil(t, r.Span)
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityError, SeverityOf(TypeNotClassInPattern))
	assert.Equal(t, SeverityWarning, SeverityOf(PatternNeverMatches))
}

func TestReportError_RoundTrip(t *testing.T) {
	r := New(WildcardPatternTypeUnknown, "capture type is Unknown", nil, nil)
	err := WrapReport(r)

	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestReport_ToJSON_Deterministic(t *testing.T) {
	r := New(ClassPatternPositionalArgCount, "too many positional args", nil, map[string]any{
		"want": 2,
		"got":  3,
	})
	js, err := r.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, js, `"code":"PAT004"`)

	again, err := r.ToJSON(true)
	require.NoError(t, err)
	assert.Equal(t, js, again)
}
