package catalog

// Default returns the built-in registry covering the price/volume fields and
// the datasets the service pulls from the BRAIN platform (fundamental6,
// fundamental2, analyst4, model16, model51, news12), plus the FASTEXPR
// operators the generator emits. The table is known-good, so construction
// cannot fail here.
func Default() *Catalog {
	c, err := New(defaultFields, defaultOperators)
	if err != nil {
		panic("catalog: default tables malformed: " + err.Error())
	}
	return c
}

var defaultFields = []Field{
	{ID: "open", Category: CategoryPrice, Domain: DomainReal},
	{ID: "high", Category: CategoryPrice, Domain: DomainReal},
	{ID: "low", Category: CategoryPrice, Domain: DomainReal},
	{ID: "close", Category: CategoryPrice, Domain: DomainReal},
	{ID: "vwap", Category: CategoryPrice, Domain: DomainReal},
	{ID: "returns", Category: CategoryPrice, Domain: DomainReal},
	{ID: "volume", Category: CategoryVolume, Domain: DomainReal},
	{ID: "adv20", Category: CategoryVolume, Domain: DomainReal},
	{ID: "cap", Category: CategoryVolume, Domain: DomainReal},

	{ID: "fnd6_assets", Category: CategoryFundamental, Domain: DomainReal},
	{ID: "fnd6_liabilities", Category: CategoryFundamental, Domain: DomainReal},
	{ID: "fnd6_revenue", Category: CategoryFundamental, Domain: DomainReal},
	{ID: "fnd6_netincome", Category: CategoryFundamental, Domain: DomainReal},
	{ID: "fnd2_cashflow_op", Category: CategoryFundamental, Domain: DomainReal},
	{ID: "fnd2_debt_lt", Category: CategoryFundamental, Domain: DomainReal},

	{ID: "anl4_eps_mean", Category: CategoryAnalyst, Domain: DomainReal},
	{ID: "anl4_target_price", Category: CategoryAnalyst, Domain: DomainReal},
	{ID: "anl4_rec_mean", Category: CategoryAnalyst, Domain: DomainBounded},

	{ID: "mdl16_value_score", Category: CategoryModel, Domain: DomainBounded},
	{ID: "mdl51_momentum_score", Category: CategoryModel, Domain: DomainBounded},

	{ID: "nws12_sentiment", Category: CategoryNews, Domain: DomainBounded},
	{ID: "nws12_story_count", Category: CategoryNews, Domain: DomainReal},

	{ID: "industry", Category: CategoryGroup, Domain: DomainGrouping},
	{ID: "sector", Category: CategoryGroup, Domain: DomainGrouping},
	{ID: "subindustry", Category: CategoryGroup, Domain: DomainGrouping},
}

var anyNumeric = []Domain{DomainReal, DomainBounded}

var defaultOperators = []Operator{
	// cross sectional
	{ID: "rank", Kind: KindCrossSectional, Arity: 1, Inputs: anyNumeric, Output: DomainBounded, Template: "rank({1})"},
	{ID: "zscore", Kind: KindCrossSectional, Arity: 1, Inputs: anyNumeric, Output: DomainReal, Template: "zscore({1})"},
	{ID: "scale", Kind: KindCrossSectional, Arity: 1, Inputs: anyNumeric, Output: DomainReal, Template: "scale({1})"},

	// time series, all windowed on a single child
	{ID: "ts_mean", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainReal, Template: "ts_mean({1}, {w})"},
	{ID: "ts_std_dev", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainReal, Template: "ts_std_dev({1}, {w})"},
	{ID: "ts_rank", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainBounded, Template: "ts_rank({1}, {w})"},
	{ID: "ts_min", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainReal, Template: "ts_min({1}, {w})"},
	{ID: "ts_max", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainReal, Template: "ts_max({1}, {w})"},
	{ID: "ts_sum", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 5, WindowMax: 250, Inputs: anyNumeric, Output: DomainReal, Template: "ts_sum({1}, {w})"},
	{ID: "delay", Kind: KindTimeSeries, Arity: 1, Windowed: true, WindowMin: 1, WindowMax: 20, Inputs: anyNumeric, Output: DomainReal, Template: "delay({1}, {w})"},

	// arithmetic
	{ID: "add", Kind: KindArithmetic, Arity: 2, Inputs: anyNumeric, Output: DomainReal, Template: "add({1}, {2})"},
	{ID: "subtract", Kind: KindArithmetic, Arity: 2, Inputs: anyNumeric, Output: DomainReal, Template: "subtract({1}, {2})"},
	{ID: "multiply", Kind: KindArithmetic, Arity: 2, Inputs: anyNumeric, Output: DomainReal, Template: "multiply({1}, {2})"},
	{ID: "divide", Kind: KindArithmetic, Arity: 2, Inputs: anyNumeric, Output: DomainReal, Template: "divide({1}, {2})"},

	// element-wise transforms
	{ID: "abs", Kind: KindTransform, Arity: 1, Inputs: anyNumeric, Output: DomainReal, Template: "abs({1})"},
	{ID: "sign", Kind: KindTransform, Arity: 1, Inputs: anyNumeric, Output: DomainBounded, Template: "sign({1})"},
	{ID: "log", Kind: KindTransform, Arity: 1, Inputs: anyNumeric, Output: DomainReal, Template: "log({1})"},

	// group: first child numeric, second a grouping field
	{ID: "group_neutralize", Kind: KindGroup, Arity: 2, Inputs: []Domain{DomainReal, DomainGrouping}, Output: DomainReal, Template: "group_neutralize({1}, {2})"},
	{ID: "group_rank", Kind: KindGroup, Arity: 2, Inputs: []Domain{DomainReal, DomainGrouping}, Output: DomainBounded, Template: "group_rank({1}, {2})"},
}
