package tools

import "encoding/json"

var definitions = []Definition{
	{
		Name:        SearchStatsKnowledge,
		Description: "Search the statistics and econometrics knowledge base for methods, assumptions and interpretation guides",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "query": {"type": "string", "description": "Search query"},
    "category": {
      "type": "string",
      "enum": ["foundations", "regression", "econometrics", "advanced", "meta", "replication", "code", "journals", "all"],
      "description": "Knowledge base category"
    },
    "n_results": {"type": "number", "description": "Number of results (default 5)"}
  },
  "required": ["query"]
}`),
	},
	{
		Name:        CalcSampleSize,
		Description: "Required sample size for t-tests, ANOVA, regression and proportions",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "test_type": {
      "type": "string",
      "enum": ["t_test_two", "t_test_paired", "anova", "regression", "proportion", "chi_square"],
      "description": "Test type"
    },
    "effect_size": {"type": "number", "description": "Effect size (Cohen's d, f, f²)"},
    "alpha": {"type": "number", "description": "Significance level (default 0.05)"},
    "power": {"type": "number", "description": "Target power (default 0.80)"},
    "groups": {"type": "number", "description": "Number of groups (ANOVA)"},
    "predictors": {"type": "number", "description": "Number of predictors (regression)"}
  },
  "required": ["test_type", "effect_size"]
}`),
	},
	{
		Name:        CalcPower,
		Description: "Statistical power at a given sample size",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "test_type": {"type": "string", "description": "Test type"},
    "n": {"type": "number", "description": "Sample size per group"},
    "effect_size": {"type": "number", "description": "Effect size"},
    "alpha": {"type": "number", "description": "Significance level"}
  },
  "required": ["test_type", "n", "effect_size"]
}`),
	},
	{
		Name:        CalcEffectSize,
		Description: "Compute and interpret an effect size (Cohen's d, η², f², OR, r)",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "type": {
      "type": "string",
      "enum": ["cohens_d", "eta_squared", "f_squared", "odds_ratio", "correlation"],
      "description": "Effect size measure"
    },
    "values": {"type": "object", "description": "Inputs for the measure"}
  },
  "required": ["type", "values"]
}`),
	},
	{
		Name:        MDECalculator,
		Description: "Minimum detectable effect for A/B tests and experiments",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "n_per_group": {"type": "number", "description": "Sample size per group"},
    "baseline": {"type": "number", "description": "Baseline proportion or mean"},
    "alpha": {"type": "number", "description": "Significance level"},
    "power": {"type": "number", "description": "Target power"},
    "test_type": {"type": "string", "enum": ["proportion", "mean"], "description": "Outcome scale"}
  },
  "required": ["n_per_group", "baseline"]
}`),
	},
	{
		Name:        PowerCurve,
		Description: "Power curve data for plotting",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "test_type": {"type": "string", "description": "Test type"},
    "n_range": {"type": "array", "items": {"type": "number"}, "description": "[min, max] sample size"},
    "effect_sizes": {"type": "array", "items": {"type": "number"}, "description": "Effect sizes"},
    "alpha": {"type": "number", "description": "Significance level"}
  },
  "required": ["test_type", "n_range", "effect_sizes"]
}`),
	},
}
