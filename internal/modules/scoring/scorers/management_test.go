package scorers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagementDebtAllowanceScaling(t *testing.T) {
	scorer := NewManagementScorer()

	base := ManagementInput{
		ROE:          fptrs(18, 19, 20, 18, 19),
		DebtToEquity: fptrs(2.0, 2.0, 2.0, 2.0, 2.0),
		FreeCashFlow: fptrs(100, 110, 120, 130, 140),
		NetIncome:    fptrs(100, 105, 110, 115, 120),
	}

	// An industrial at 2.0x D/E is heavily leveraged
	industrial := base
	industrial.DebtAllowance = 1.0
	industrialScore := scorer.Calculate(industrial)
	assert.Equal(t, 5.0, industrialScore.Components["debt_management"])

	// A bank at the same 2.0x is comfortably within its structural norm
	bank := base
	bank.DebtAllowance = 3.0
	bankScore := scorer.Calculate(bank)
	assert.Equal(t, 18.0, bankScore.Components["debt_management"])

	assert.Greater(t, bankScore.Score, industrialScore.Score)
}

func TestManagementCashGeneration(t *testing.T) {
	scorer := NewManagementScorer()

	t.Run("fcf above net income", func(t *testing.T) {
		result := scorer.Calculate(ManagementInput{
			ROE:           fptrs(16, 17, 18),
			DebtToEquity:  fptrs(0.2, 0.2, 0.2),
			FreeCashFlow:  fptrs(120, 125, 130),
			NetIncome:     fptrs(100, 105, 110),
			DebtAllowance: 1.0,
		})
		assert.Equal(t, 33.0, result.Components["cash_generation"])
	})

	t.Run("no positive earnings base", func(t *testing.T) {
		result := scorer.Calculate(ManagementInput{
			ROE:           fptrs(16, 17, 18),
			DebtToEquity:  fptrs(0.2, 0.2, 0.2),
			FreeCashFlow:  fptrs(50, 50, 50),
			NetIncome:     fptrs(-100, -105, -110),
			DebtAllowance: 1.0,
		})
		assert.Equal(t, 5.0, result.Components["cash_generation"])
	})
}

func TestManagementNeutralOnNegativeEquity(t *testing.T) {
	scorer := NewManagementScorer()

	result := scorer.Calculate(ManagementInput{
		ROE:           []*float64{nil, nil, nil, nil},
		DebtToEquity:  []*float64{nil, nil, nil, nil},
		FreeCashFlow:  fptrs(100, 110, 120, 130),
		NetIncome:     fptrs(90, 95, 100, 105),
		DebtAllowance: 1.0,
	})

	assert.Equal(t, 17.0, result.Components["roe_consistency"])
	assert.Equal(t, 20.0, result.Components["debt_management"])
	assert.Equal(t, 33.0, result.Components["cash_generation"])

	found := false
	for _, n := range result.Notes {
		if strings.Contains(n, "negative equity") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestManagementZeroAllowanceDefaultsToOne(t *testing.T) {
	scorer := NewManagementScorer()

	explicit := scorer.Calculate(ManagementInput{
		DebtToEquity:  fptrs(0.4, 0.4, 0.4),
		DebtAllowance: 1.0,
	})
	zero := scorer.Calculate(ManagementInput{
		DebtToEquity: fptrs(0.4, 0.4, 0.4),
	})

	assert.Equal(t, explicit.Components["debt_management"], zero.Components["debt_management"])
}
