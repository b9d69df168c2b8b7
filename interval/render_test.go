package interval_test

import (
	"fmt"
	"testing"

	"github.com/reugn/go-interval/internal/assert"
	"github.com/reugn/go-interval/interval"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		expr     *interval.Builder
		expected string
	}{
		{"empty", interval.Expr(), ""},
		{"root", interval.Expr().Year(), "Year"},
		{"placeholder", interval.Expr().Year().Month(), "Year > Month"},
		{"negative index", interval.Expr().Month().Day().At(-1), "Month > Day[0]"},
		{"second to last index", interval.Expr().Year().Month().At(-2), "Year > Month[-1]"},
		{"magnitude", interval.Expr().Day().N(1), "delta(days=1)"},
		{"negative magnitude", interval.Expr().Quarter().N(-2), "delta(quarters=-2)"},
		{"order of operations",
			interval.Expr().Year().Month().At(2).Day().At(0).
				Minus(interval.Expr().Day().N(1)).
				Minus(interval.Expr().Month().N(1)).
				Hour().At(11).Minute().At(45),
			"Year > Month[3] > Day[1] - delta(days=1) - delta(months=1) > Hour[12] > Minute[46]"},
		{"plus", interval.Expr().Year().Month().At(0).Plus(interval.Expr().Week().N(2)),
			"Year > Month[1] + delta(weeks=2)"},
		{"subtracting a negative magnitude",
			interval.Expr().Day().Minus(interval.Expr().Hour().N(-2)),
			"Day + delta(hours=2)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.IsNil(t, tt.expr.Err())
			assert.Equal(t, interval.Render(tt.expr.Expression()), tt.expected)
			assert.Equal(t, tt.expr.String(), tt.expected)
			assert.Equal(t, fmt.Sprint(tt.expr.Expression()), tt.expected)
		})
	}
}
