package refdata

// Constant names for consumption-billed service cost rates.
const (
	SnowflakeCreditRateKey = "snowflake_credit_usd"
	DatabricksDBURateKey   = "databricks_dbu_usd"
)

// Default cost rates in USD for credit-denominated billing units.
// List prices for standard-tier compute; teams on negotiated contracts
// override these per team.
const (
	defaultSnowflakeCreditUSD = 3.00
	defaultDatabricksDBUUSD   = 0.55
)
