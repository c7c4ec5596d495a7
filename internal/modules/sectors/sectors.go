// Package sectors classifies securities into business sectors and carries
// the per-sector context the scoring layer needs: structurally leveraged
// business types (banks, NBFIs, insurers) get a higher debt allowance so
// the management scorer does not read normal balance-sheet leverage as
// recklessness.
package sectors

import "strings"

// Sector is a closed classification
type Sector string

const (
	SectorPharmaceuticals Sector = "Pharmaceuticals"
	SectorBanking         Sector = "Banking"
	SectorNBFI            Sector = "NBFI"
	SectorInsurance       Sector = "Insurance"
	SectorCement          Sector = "Cement"
	SectorFMCG            Sector = "FMCG"
	SectorTextiles        Sector = "Textiles & RMG"
	SectorPowerEnergy     Sector = "Power & Energy"
	SectorTelecom         Sector = "Telecom"
	SectorIT              Sector = "IT & Technology"
	SectorFoodAllied      Sector = "Food & Allied"
	SectorEngineering     Sector = "Engineering"
	SectorMiscellaneous   Sector = "Miscellaneous"
	SectorUnknown         Sector = "Unknown"
)

// Profile holds sector characteristics relevant to scoring and display
type Profile struct {
	Sector          Sector  `json:"sector"`
	Cyclicality     string  `json:"cyclicality"` // Low, Medium, High
	Defensive       bool    `json:"is_defensive"`
	GrowthPotential string  `json:"growth_potential"` // Low, Medium, High
	FinancialType   bool    `json:"financial_type"`   // structurally leveraged balance sheet
	DebtAllowance   float64 `json:"debt_allowance"`   // scales management debt thresholds
	InvestmentNote  string  `json:"investment_note"`
}

var profiles = map[Sector]Profile{
	SectorPharmaceuticals: {
		Sector: SectorPharmaceuticals, Cyclicality: "Low", Defensive: true,
		GrowthPotential: "High", DebtAllowance: 1.0,
		InvestmentNote: "Defensive demand with export upside; watch API import dependence",
	},
	SectorBanking: {
		Sector: SectorBanking, Cyclicality: "Medium", Defensive: false,
		GrowthPotential: "Medium", FinancialType: true, DebtAllowance: 3.0,
		InvestmentNote: "Leverage is the business model; judge on asset quality, not D/E",
	},
	SectorNBFI: {
		Sector: SectorNBFI, Cyclicality: "High", Defensive: false,
		GrowthPotential: "Medium", FinancialType: true, DebtAllowance: 3.0,
		InvestmentNote: "Funding-cost sensitive; high leverage is structural",
	},
	SectorInsurance: {
		Sector: SectorInsurance, Cyclicality: "Medium", Defensive: true,
		GrowthPotential: "Medium", FinancialType: true, DebtAllowance: 2.0,
		InvestmentNote: "Float-driven balance sheet; reserves dominate reported liabilities",
	},
	SectorCement: {
		Sector: SectorCement, Cyclicality: "High", Defensive: false,
		GrowthPotential: "Medium", DebtAllowance: 1.2,
		InvestmentNote: "Capital intensive and infrastructure-cycle dependent",
	},
	SectorFMCG: {
		Sector: SectorFMCG, Cyclicality: "Low", Defensive: true,
		GrowthPotential: "High", DebtAllowance: 1.0,
		InvestmentNote: "Brand moats and distribution reach compound well",
	},
	SectorTextiles: {
		Sector: SectorTextiles, Cyclicality: "High", Defensive: false,
		GrowthPotential: "Medium", DebtAllowance: 1.2,
		InvestmentNote: "Export driven, thin margins, currency sensitive",
	},
	SectorPowerEnergy: {
		Sector: SectorPowerEnergy, Cyclicality: "Low", Defensive: true,
		GrowthPotential: "Medium", DebtAllowance: 1.5,
		InvestmentNote: "Contracted cash flows; project debt is normal",
	},
	SectorTelecom: {
		Sector: SectorTelecom, Cyclicality: "Low", Defensive: true,
		GrowthPotential: "Low", DebtAllowance: 1.5,
		InvestmentNote: "Utility-like; spectrum and capex commitments carry debt",
	},
	SectorIT: {
		Sector: SectorIT, Cyclicality: "Medium", Defensive: false,
		GrowthPotential: "High", DebtAllowance: 1.0,
		InvestmentNote: "Asset light; expect low debt and high cash conversion",
	},
	SectorFoodAllied: {
		Sector: SectorFoodAllied, Cyclicality: "Low", Defensive: true,
		GrowthPotential: "Medium", DebtAllowance: 1.0,
		InvestmentNote: "Staple demand, commodity input cost swings",
	},
	SectorEngineering: {
		Sector: SectorEngineering, Cyclicality: "High", Defensive: false,
		GrowthPotential: "Medium", DebtAllowance: 1.2,
		InvestmentNote: "Order-book driven and working-capital heavy",
	},
	SectorMiscellaneous: {
		Sector: SectorMiscellaneous, Cyclicality: "Medium", Defensive: false,
		GrowthPotential: "Medium", DebtAllowance: 1.0,
		InvestmentNote: "",
	},
}

// GetProfile returns the profile for a sector name, matching
// case-insensitively; unknown names fall back to a neutral profile.
func GetProfile(name string) Profile {
	needle := strings.TrimSpace(strings.ToLower(name))
	for sector, profile := range profiles {
		if strings.ToLower(string(sector)) == needle {
			return profile
		}
	}
	return Profile{
		Sector:          SectorUnknown,
		Cyclicality:     "Medium",
		GrowthPotential: "Medium",
		DebtAllowance:   1.0,
	}
}

// DebtAllowance is a convenience lookup for the management scorer
func DebtAllowance(sectorName string) float64 {
	return GetProfile(sectorName).DebtAllowance
}
