package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
)

var _ deckGenerator = &deckGeneratorMock{}

type deckGeneratorMock struct {
	GenerateFunc func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error)

	calls struct {
		Generate []struct {
			Ctx   context.Context
			Input generation.GenerateInput
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *deckGeneratorMock) Generate(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
	if mock.GenerateFunc == nil {
		panic("deckGeneratorMock.GenerateFunc: method is nil but deckGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input generation.GenerateInput
	}{Ctx: ctx, Input: input}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, input)
}

func (mock *deckGeneratorMock) GenerateCalls() []struct {
	Ctx   context.Context
	Input generation.GenerateInput
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

var _ cardTutor = &cardTutorMock{}

type cardTutorMock struct {
	ExplainFunc func(ctx context.Context, input tutor.ExplainInput) (string, error)
	GradeFunc   func(ctx context.Context, input tutor.GradeInput) (domain.Grade, error)

	calls struct {
		Explain []struct {
			Ctx   context.Context
			Input tutor.ExplainInput
		}
		Grade []struct {
			Ctx   context.Context
			Input tutor.GradeInput
		}
	}
	lockExplain sync.RWMutex
	lockGrade   sync.RWMutex
}

func (mock *cardTutorMock) Explain(ctx context.Context, input tutor.ExplainInput) (string, error) {
	if mock.ExplainFunc == nil {
		panic("cardTutorMock.ExplainFunc: method is nil but cardTutor.Explain was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tutor.ExplainInput
	}{Ctx: ctx, Input: input}
	mock.lockExplain.Lock()
	mock.calls.Explain = append(mock.calls.Explain, callInfo)
	mock.lockExplain.Unlock()
	return mock.ExplainFunc(ctx, input)
}

func (mock *cardTutorMock) ExplainCalls() []struct {
	Ctx   context.Context
	Input tutor.ExplainInput
} {
	mock.lockExplain.RLock()
	calls := mock.calls.Explain
	mock.lockExplain.RUnlock()
	return calls
}

func (mock *cardTutorMock) Grade(ctx context.Context, input tutor.GradeInput) (domain.Grade, error) {
	if mock.GradeFunc == nil {
		panic("cardTutorMock.GradeFunc: method is nil but cardTutor.Grade was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tutor.GradeInput
	}{Ctx: ctx, Input: input}
	mock.lockGrade.Lock()
	mock.calls.Grade = append(mock.calls.Grade, callInfo)
	mock.lockGrade.Unlock()
	return mock.GradeFunc(ctx, input)
}

func (mock *cardTutorMock) GradeCalls() []struct {
	Ctx   context.Context
	Input tutor.GradeInput
} {
	mock.lockGrade.RLock()
	calls := mock.calls.Grade
	mock.lockGrade.RUnlock()
	return calls
}
