package catalog

// Default returns the knowledge base shipped with the service.
func Default() *Catalog {
	return MustNew(
		NewDescriptor("descriptive", "descriptive_stats", Foundations, LevelBasic,
			"Descriptive statistics, distributions, visualization"),
		NewDescriptor("probability", "probability_theory", Foundations, LevelBasic,
			"Probability theory, probability distributions, central limit theorem"),
		NewDescriptor("hypothesis", "hypothesis_testing", Foundations, LevelBasic,
			"Hypothesis testing, t-test, ANOVA, chi-square"),
		NewDescriptor("power", "power_analysis", Foundations, LevelIntermediate,
			"Power analysis, sample size calculation, effect sizes"),

		NewDescriptor("ols", "ols_regression", Regression, LevelIntermediate,
			"OLS: assumptions, diagnostics, interpretation"),
		NewDescriptor("logistic", "logistic_regression", Regression, LevelIntermediate,
			"Logit, probit, ordered and multinomial logit"),
		NewDescriptor("count", "count_models", Regression, LevelIntermediate,
			"Poisson, negative binomial, zero-inflated models"),
		NewDescriptor("survival", "survival_analysis", Regression, LevelAdvanced,
			"Survival analysis, Cox, Kaplan-Meier"),

		NewDescriptor("panel", "panel_data", Econometrics, LevelAdvanced,
			"Panel data, fixed and random effects, Hausman test"),
		NewDescriptor("timeseries", "time_series", Econometrics, LevelAdvanced,
			"Time series, ARIMA, VAR, cointegration"),
		NewDescriptor("iv", "instrumental_variables", Econometrics, LevelAdvanced,
			"Instrumental variables, 2SLS, GMM"),
		NewDescriptor("did", "diff_in_diff", Econometrics, LevelAdvanced,
			"Difference-in-differences, parallel trends, event studies"),
		NewDescriptor("rdd", "regression_discontinuity", Econometrics, LevelAdvanced,
			"Regression discontinuity, sharp and fuzzy RD"),
		NewDescriptor("synth", "synthetic_control", Econometrics, LevelAdvanced,
			"Synthetic control, SCM, causal inference"),

		NewDescriptor("sem", "structural_equation", Advanced, LevelAdvanced,
			"Structural equation modeling, CFA, path analysis"),
		NewDescriptor("mlm", "multilevel", Advanced, LevelAdvanced,
			"Multilevel models, HLM, random effects"),
		NewDescriptor("bayesian", "bayesian_stats", Advanced, LevelAdvanced,
			"Bayesian statistics, MCMC, priors"),
		NewDescriptor("ml", "machine_learning", Advanced, LevelAdvanced,
			"Machine learning, random forests, XGBoost, cross-validation"),
		NewDescriptor("spatial", "spatial_analysis", Advanced, LevelAdvanced,
			"Spatial analysis, SAR, GWR, spatial weight matrices"),
		NewDescriptor("network", "network_analysis", Advanced, LevelAdvanced,
			"Network analysis, centrality, ERGM"),

		NewDescriptor("metaBasic", "meta_basic", Meta, LevelIntermediate,
			"Meta-analysis basics, effect sizes, heterogeneity"),
		NewDescriptor("metaAdvanced", "meta_advanced", Meta, LevelAdvanced,
			"Meta-regression, publication bias, sensitivity analysis"),

		NewDescriptor("prereg", "preregistration", Replication, LevelBasic,
			"Preregistration, OSF, AsPredicted"),
		NewDescriptor("openscience", "open_science", Replication, LevelBasic,
			"Open science, FAIR principles, data sharing"),
		NewDescriptor("reproducibility", "reproducibility", Replication, LevelIntermediate,
			"Reproducibility, code sharing, containers"),

		NewDescriptor("rBasic", "r_basic", Code, LevelBasic,
			"R basics, tidyverse, ggplot2"),
		NewDescriptor("rAdvanced", "r_advanced", Code, LevelAdvanced,
			"Advanced R, plm, lme4, brms"),
		NewDescriptor("stata", "stata_code", Code, LevelIntermediate,
			"Stata code, xtreg, reghdfe, did"),
		NewDescriptor("python", "python_code", Code, LevelIntermediate,
			"Python code, statsmodels, sklearn"),

		NewDescriptor("econometrica", "journal_econometrica", Journals, LevelAdvanced,
			"Econometrica style, mathematical notation"),
		NewDescriptor("aer", "journal_aer", Journals, LevelAdvanced,
			"AER style, emphasis on causal identification"),
		NewDescriptor("jfe", "journal_jfe", Journals, LevelAdvanced,
			"JFE style, financial data"),
		NewDescriptor("ms", "journal_ms", Journals, LevelAdvanced,
			"Management Science style"),
	)
}
