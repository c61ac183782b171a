package constant

// SimulationSettings is the environment block a candidate is simulated under
// on the platform. Field names follow the simulations API payload.
type SimulationSettings struct {
	InstrumentType string  `json:"instrumentType"`
	Region         string  `json:"region"`
	Universe       string  `json:"universe"`
	Delay          int64   `json:"delay"`
	Decay          int64   `json:"decay"`
	Neutralization string  `json:"neutralization"`
	Truncation     float64 `json:"truncation"`
	Pasteurization string  `json:"pasteurization"`
	UnitHandling   string  `json:"unitHandling"`
	NanHandling    string  `json:"nanHandling"`
	Language       string  `json:"language"`
	Visualization  bool    `json:"visualization"`
	TestPeriod     string  `json:"testPeriod,omitempty"`
}

// DefaultSimulationSettings returns the stock USA/TOP3000 environment.
func DefaultSimulationSettings() SimulationSettings {
	return SimulationSettings{
		InstrumentType: "EQUITY",
		Region:         "USA",
		Universe:       "TOP3000",
		Delay:          1,
		Decay:          0,
		Neutralization: "INDUSTRY",
		Truncation:     0.08,
		Pasteurization: "ON",
		UnitHandling:   "VERIFY",
		NanHandling:    "OFF",
		Language:       "FASTEXPR",
		Visualization:  false,
	}
}
