package classifier

// Default returns the built-in CFA Level III topic table. Target percentages
// sum to 100; min/max bands follow the published curriculum weights.
func Default() *Config {
	return &Config{
		DefaultTopic: "Portfolio Management Pathway",
		Topics: []TopicConfig{
			{
				Topic:     "Asset Allocation",
				MinPct:    15,
				MaxPct:    20,
				TargetPct: 17.5,
				Keywords: []string{
					"asset allocation", "strategic allocation", "tactical allocation",
					"mean-variance optimization", "efficient frontier", "risk budgeting",
					"liability-driven investing", "ALM", "asset-liability matching",
					"rebalancing", "portfolio optimization", "capital market expectations",
					"monte carlo simulation",
				},
			},
			{
				Topic:     "Portfolio Construction",
				MinPct:    15,
				MaxPct:    20,
				TargetPct: 17.5,
				Keywords: []string{
					"portfolio construction", "factor investing", "smart beta",
					"alternative investments", "private equity", "hedge funds",
					"real estate", "commodities", "currency management",
					"overlay strategies", "completion portfolios", "core-satellite",
					"barbell strategy",
				},
			},
			{
				Topic:     "Performance Management",
				MinPct:    5,
				MaxPct:    10,
				TargetPct: 7.5,
				Keywords: []string{
					"performance measurement", "performance attribution", "GIPS",
					"benchmarking", "risk-adjusted returns", "sharpe ratio",
					"information ratio", "tracking error", "alpha", "beta",
					"performance evaluation", "attribution analysis", "appraisal ratio",
				},
			},
			{
				Topic:     "Derivatives & Risk Management",
				MinPct:    10,
				MaxPct:    15,
				TargetPct: 12.5,
				Keywords: []string{
					"derivatives", "options", "futures", "swaps", "forwards",
					"risk management", "hedging", "VaR", "value at risk", "credit risk",
					"market risk", "operational risk", "stress testing",
					"scenario analysis", "tail risk", "downside protection",
				},
			},
			{
				Topic:     "Ethics & Professional Standards",
				MinPct:    10,
				MaxPct:    15,
				TargetPct: 12.5,
				Keywords: []string{
					"ethics", "professional standards", "code of ethics",
					"standards of professional conduct", "fiduciary duty",
					"conflicts of interest", "material nonpublic information",
					"fair dealing", "suitability", "performance presentation",
					"compliance", "investment management process",
				},
			},
			{
				Topic:     "Portfolio Management Pathway",
				MinPct:    30,
				MaxPct:    35,
				TargetPct: 32.5,
				Keywords: []string{
					"institutional portfolio management", "individual portfolio management",
					"wealth management", "pension funds", "endowments", "foundations",
					"insurance companies", "banks", "sovereign wealth funds",
					"family offices", "high net worth", "retirement planning",
					"estate planning", "tax considerations", "behavioral finance",
					"client management",
				},
			},
		},
	}
}
