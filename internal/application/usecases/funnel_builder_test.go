package usecases

import (
	"testing"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFunnel sessioniza os eventos de um único visitante e devolve o
// funil da primeira sessão
func buildFunnel(t *testing.T, events []entities.Event) entities.SessionFunnel {
	t.Helper()
	result := newTestSessionizer(t).Sessionize(events)
	funnels := NewFunnelBuilder().BuildAll(result)
	require.NotEmpty(t, funnels)
	return funnels[0]
}

func TestFunnelCompletePathIsValid(t *testing.T) {
	// view → addtocart → transaction na ordem certa
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 1, 100, entities.EventTypeAddToCart),
		makeEvent(3, 1, 200, entities.EventTypeTransaction),
	})

	assert.True(t, funnel.ValidFunnel)
	assert.Nil(t, funnel.InvalidReason)
	assert.True(t, funnel.HasView)
	assert.True(t, funnel.HasAddtocart)
	assert.True(t, funnel.HasTransaction)
	require.NotNil(t, funnel.FirstViewTime)
	require.NotNil(t, funnel.FirstAddtocartTime)
	require.NotNil(t, funnel.FirstTransactionTime)
	assert.Equal(t, testBase, *funnel.FirstViewTime)
	assert.Equal(t, testBase.Add(100*time.Second), *funnel.FirstAddtocartTime)
	assert.Equal(t, testBase.Add(200*time.Second), *funnel.FirstTransactionTime)
}

func TestFunnelViewOnlyIsValid(t *testing.T) {
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
	})

	assert.True(t, funnel.ValidFunnel)
	assert.Nil(t, funnel.InvalidReason)
	assert.Nil(t, funnel.FirstAddtocartTime)
	assert.Nil(t, funnel.FirstTransactionTime)
}

func TestFunnelTxnWithoutView(t *testing.T) {
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeTransaction),
	})

	assert.False(t, funnel.ValidFunnel)
	require.NotNil(t, funnel.InvalidReason)
	// TXN_WITHOUT_VIEW e TXN_WITHOUT_ADDTOCART se aplicam; vale a prioridade
	assert.Equal(t, entities.ReasonTxnWithoutView, *funnel.InvalidReason)
}

func TestFunnelTxnWithoutAddtocart(t *testing.T) {
	// view em t=0, transaction em t=50, sem addtocart
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 1, 50, entities.EventTypeTransaction),
	})

	assert.False(t, funnel.ValidFunnel)
	require.NotNil(t, funnel.InvalidReason)
	assert.Equal(t, entities.ReasonTxnWithoutAddtocart, *funnel.InvalidReason)
}

func TestFunnelTxnBeforeAddtocart(t *testing.T) {
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 1, 10, entities.EventTypeTransaction),
		makeEvent(3, 1, 20, entities.EventTypeAddToCart),
	})

	assert.False(t, funnel.ValidFunnel)
	require.NotNil(t, funnel.InvalidReason)
	assert.Equal(t, entities.ReasonTxnBeforeAddtocart, *funnel.InvalidReason)
}

func TestFunnelAddtocartWithoutView(t *testing.T) {
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeAddToCart),
	})

	assert.False(t, funnel.ValidFunnel)
	require.NotNil(t, funnel.InvalidReason)
	assert.Equal(t, entities.ReasonAddtocartWithoutView, *funnel.InvalidReason)
}

func TestFunnelAddtocartBeforeView(t *testing.T) {
	// addtocart em t=10 antes do view em t=20
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 10, entities.EventTypeAddToCart),
		makeEvent(2, 1, 20, entities.EventTypeView),
	})

	assert.False(t, funnel.ValidFunnel)
	require.NotNil(t, funnel.InvalidReason)
	assert.Equal(t, entities.ReasonAddtocartBeforeView, *funnel.InvalidReason)
}

func TestFunnelEqualTimestampsAreValid(t *testing.T) {
	// Timestamps iguais entre estágios contam como ordem válida
	// (granularidade grossa não vira violação)
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 1, 0, entities.EventTypeAddToCart),
		makeEvent(3, 1, 0, entities.EventTypeTransaction),
	})

	assert.True(t, funnel.ValidFunnel)
	assert.Nil(t, funnel.InvalidReason)
}

func TestFunnelUsesFirstOccurrencePerStage(t *testing.T) {
	funnel := buildFunnel(t, []entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 1, 30, entities.EventTypeView),
		makeEvent(3, 1, 60, entities.EventTypeAddToCart),
		makeEvent(4, 1, 90, entities.EventTypeAddToCart),
	})

	require.NotNil(t, funnel.FirstViewTime)
	require.NotNil(t, funnel.FirstAddtocartTime)
	assert.Equal(t, testBase, *funnel.FirstViewTime)
	assert.Equal(t, testBase.Add(60*time.Second), *funnel.FirstAddtocartTime)
}

func TestFunnelVerdictIsTotal(t *testing.T) {
	// Toda sessão produz exatamente um funil; inválidos carregam
	// exatamente uma razão do conjunto fechado
	result := newTestSessionizer(t).Sessionize([]entities.Event{
		makeEvent(1, 1, 0, entities.EventTypeView),
		makeEvent(2, 2, 0, entities.EventTypeAddToCart),
		makeEvent(3, 3, 0, entities.EventTypeTransaction),
		makeEvent(4, 4, 0, entities.EventTypeView),
		makeEvent(5, 4, 5000, entities.EventTypeTransaction),
	})
	funnels := NewFunnelBuilder().BuildAll(result)

	require.Len(t, funnels, len(result.Sessions))
	for _, funnel := range funnels {
		if funnel.ValidFunnel {
			assert.Nil(t, funnel.InvalidReason)
			continue
		}
		require.NotNil(t, funnel.InvalidReason)
		assert.Contains(t, entities.AllInvalidReasons, *funnel.InvalidReason)
	}
}

func TestFunnelSessionSplitIsolatesStages(t *testing.T) {
	// Gap de 2000s > 1800s: o addtocart cai numa sessão sem view e o
	// funil dela fica inválido
	result := newTestSessionizer(t).Sessionize([]entities.Event{
		makeEvent(1, 2, 0, entities.EventTypeView),
		makeEvent(2, 2, 2000, entities.EventTypeAddToCart),
	})
	funnels := NewFunnelBuilder().BuildAll(result)

	require.Len(t, funnels, 2)

	first, second := funnels[0], funnels[1]
	assert.True(t, first.ValidFunnel)
	assert.True(t, first.HasView)
	assert.False(t, first.HasAddtocart)

	assert.False(t, second.ValidFunnel)
	require.NotNil(t, second.InvalidReason)
	assert.Equal(t, entities.ReasonAddtocartWithoutView, *second.InvalidReason)
}
