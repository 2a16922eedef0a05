package usecases

import (
	"testing"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFunnelWith(hasView, hasAddtocart, hasTransaction bool, convertSeconds int64) entities.SessionFunnel {
	funnel := entities.SessionFunnel{
		HasView:        hasView,
		HasAddtocart:   hasAddtocart,
		HasTransaction: hasTransaction,
		ValidFunnel:    true,
	}
	if hasView {
		viewTime := testBase
		funnel.FirstViewTime = &viewTime
	}
	if hasAddtocart {
		cartTime := testBase.Add(10 * time.Second)
		funnel.FirstAddtocartTime = &cartTime
	}
	if hasTransaction {
		txnTime := testBase.Add(time.Duration(convertSeconds) * time.Second)
		funnel.FirstTransactionTime = &txnTime
	}
	return funnel
}

func invalidFunnelWith(reason entities.InvalidReason) entities.SessionFunnel {
	return entities.SessionFunnel{
		ValidFunnel:   false,
		InvalidReason: &reason,
	}
}

func TestComputeFunnelReportEmptyCollection(t *testing.T) {
	report := ComputeFunnelReport(nil)

	// Denominadores zero viram métricas nulas, nunca erro
	assert.Zero(t, report.TotalSessions)
	assert.Nil(t, report.Conversion.ViewToAddtocart)
	assert.Nil(t, report.Conversion.AddtocartToTransaction)
	assert.Nil(t, report.Conversion.ViewToTransaction)
	assert.Nil(t, report.TimeToConvert.AvgSeconds)
	assert.Nil(t, report.TimeToConvert.MedianSeconds)
}

func TestComputeFunnelReportCountsAndRates(t *testing.T) {
	funnels := []entities.SessionFunnel{
		validFunnelWith(true, true, true, 100),  // convertida
		validFunnelWith(true, true, true, 300),  // convertida
		validFunnelWith(true, true, false, 0),   // parou no carrinho
		validFunnelWith(true, false, false, 0),  // parou no view
		validFunnelWith(false, false, false, 0), // sem atividade relevante
		invalidFunnelWith(entities.ReasonTxnWithoutView),
		invalidFunnelWith(entities.ReasonAddtocartBeforeView),
		invalidFunnelWith(entities.ReasonAddtocartBeforeView),
	}

	report := ComputeFunnelReport(funnels)

	assert.EqualValues(t, 8, report.TotalSessions)
	assert.EqualValues(t, 5, report.ValidSessions)
	assert.EqualValues(t, 3, report.InvalidSessions)
	assert.EqualValues(t, 1, report.InvalidByReason[string(entities.ReasonTxnWithoutView)])
	assert.EqualValues(t, 2, report.InvalidByReason[string(entities.ReasonAddtocartBeforeView)])

	// Alcance de estágio conta só sessões válidas
	assert.EqualValues(t, 4, report.StageReach.View)
	assert.EqualValues(t, 3, report.StageReach.Addtocart)
	assert.EqualValues(t, 2, report.StageReach.Transaction)

	require.NotNil(t, report.Conversion.ViewToAddtocart)
	assert.InDelta(t, 75.0, *report.Conversion.ViewToAddtocart, 0.001)
	require.NotNil(t, report.Conversion.AddtocartToTransaction)
	assert.InDelta(t, 66.666, *report.Conversion.AddtocartToTransaction, 0.001)
	require.NotNil(t, report.Conversion.ViewToTransaction)
	assert.InDelta(t, 50.0, *report.Conversion.ViewToTransaction, 0.001)

	assert.EqualValues(t, 2, report.DropOff.Converted)
	assert.EqualValues(t, 1, report.DropOff.DroppedAfterAddtocart)
	assert.EqualValues(t, 1, report.DropOff.DroppedAfterView)
	assert.EqualValues(t, 1, report.DropOff.NoMeaningfulActivity)

	assert.EqualValues(t, 2, report.TimeToConvert.Sessions)
	require.NotNil(t, report.TimeToConvert.AvgSeconds)
	assert.InDelta(t, 200.0, *report.TimeToConvert.AvgSeconds, 0.001)
	require.NotNil(t, report.TimeToConvert.MedianSeconds)
	assert.InDelta(t, 200.0, *report.TimeToConvert.MedianSeconds, 0.001)
}

func TestComputeFunnelReportMedianOddCount(t *testing.T) {
	funnels := []entities.SessionFunnel{
		validFunnelWith(true, true, true, 50),
		validFunnelWith(true, true, true, 100),
		validFunnelWith(true, true, true, 900),
	}

	report := ComputeFunnelReport(funnels)

	require.NotNil(t, report.TimeToConvert.MedianSeconds)
	assert.InDelta(t, 100.0, *report.TimeToConvert.MedianSeconds, 0.001)
	require.NotNil(t, report.TimeToConvert.AvgSeconds)
	assert.InDelta(t, 350.0, *report.TimeToConvert.AvgSeconds, 0.001)
}

func TestComputeFunnelReportNoTransactionsLeavesRatioNil(t *testing.T) {
	funnels := []entities.SessionFunnel{
		validFunnelWith(true, false, false, 0),
		validFunnelWith(true, false, false, 0),
	}

	report := ComputeFunnelReport(funnels)

	// Ninguém chegou ao carrinho: addtocart→transaction fica indefinido
	assert.Nil(t, report.Conversion.AddtocartToTransaction)
	require.NotNil(t, report.Conversion.ViewToAddtocart)
	assert.InDelta(t, 0.0, *report.Conversion.ViewToAddtocart, 0.001)
	assert.Nil(t, report.TimeToConvert.AvgSeconds)
}
