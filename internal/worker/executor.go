package worker

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cuongbtq/taskqueue-be/internal/task"
	"github.com/cuongbtq/taskqueue-be/internal/worker/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Executor runs the handler matching a task type
type Executor struct{}

// NewExecutor creates an executor
func NewExecutor() *Executor {
	return &Executor{}
}

type outcome struct {
	value any
	err   error
}

// Execute runs the handler for typ on input. It returns when the handler
// finishes or ctx is done, whichever comes first.
func (e *Executor) Execute(ctx context.Context, typ task.Type, input string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("job execution canceled: %w", err)
	}

	done := make(chan outcome, 1)
	go func() {
		v, err := e.run(typ, input)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("job execution canceled: %w", ctx.Err())
	}
}

func (e *Executor) run(typ task.Type, input string) (any, error) {
	switch typ {
	case task.TypeReverseText:
		return reverseText(input), nil
	case task.TypeUppercase:
		// a Caser is not safe for concurrent use
		return cases.Upper(language.Und).String(input), nil
	case task.TypeSumNumbers:
		return sumNumbers(input)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTaskType, typ)
	}
}

func reverseText(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func sumNumbers(s string) (int64, error) {
	var total int64
	for _, segment := range strings.Split(s, "+") {
		segment = strings.TrimSpace(segment)
		n, err := strconv.ParseInt(segment, 10, 64)
		if err != nil {
			return 0, &domain.ParseError{Segment: segment, Err: err}
		}
		if (n > 0 && total > math.MaxInt64-n) || (n < 0 && total < math.MinInt64-n) {
			return 0, domain.ErrSumOverflow
		}
		total += n
	}
	return total, nil
}
