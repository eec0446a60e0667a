package worker

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/cuongbtq/taskqueue-be/internal/task"
	"github.com/cuongbtq/taskqueue-be/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Execute(t *testing.T) {
	tests := []struct {
		name  string
		typ   task.Type
		input string
		want  any
	}{
		{name: "reverse ascii", typ: task.TypeReverseText, input: "hello", want: "olleh"},
		{name: "reverse empty", typ: task.TypeReverseText, input: "", want: ""},
		{name: "reverse multibyte", typ: task.TypeReverseText, input: "héllo, 世界", want: "界世 ,olléh"},
		{name: "uppercase", typ: task.TypeUppercase, input: "hello", want: "HELLO"},
		{name: "uppercase full mapping", typ: task.TypeUppercase, input: "straße", want: "STRASSE"},
		{name: "sum", typ: task.TypeSumNumbers, input: "2+3+5", want: int64(10)},
		{name: "sum with spaces and negatives", typ: task.TypeSumNumbers, input: " 7 + -2 ", want: int64(5)},
		{name: "sum single", typ: task.TypeSumNumbers, input: "42", want: int64(42)},
	}

	e := NewExecutor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Execute(context.Background(), tt.typ, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecutor_SumParseError(t *testing.T) {
	e := NewExecutor()

	for _, input := range []string{"a+1", "1+", "", "1.5+2", "1++2"} {
		_, err := e.Execute(context.Background(), task.TypeSumNumbers, input)
		require.Error(t, err, input)

		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr), input)
	}

	_, err := e.Execute(context.Background(), task.TypeSumNumbers, "a+1")
	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "a", parseErr.Segment)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestExecutor_SumOverflow(t *testing.T) {
	e := NewExecutor()

	_, err := e.Execute(context.Background(), task.TypeSumNumbers, "9223372036854775807+1")
	assert.ErrorIs(t, err, domain.ErrSumOverflow)

	_, err = e.Execute(context.Background(), task.TypeSumNumbers, "-9223372036854775808+-1")
	assert.ErrorIs(t, err, domain.ErrSumOverflow)

	_, err = e.Execute(context.Background(), task.TypeSumNumbers, "99999999999999999999")
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestExecutor_UnknownType(t *testing.T) {
	_, err := NewExecutor().Execute(context.Background(), task.Type("delete_all"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownTaskType)
}

func TestExecutor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor().Execute(ctx, task.TypeUppercase, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
