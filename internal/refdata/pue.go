package refdata

// Constant names for Power Usage Effectiveness per provider.
const (
	PUEAWSKey     = "pue_aws"
	PUEGCPKey     = "pue_gcp"
	PUEAzureKey   = "pue_azure"
	PUEDefaultKey = "pue_default"
)

// PUERule maps a provider name fragment to a PUE constant. The calculator
// matches these as substrings against the workload's provider field, in
// order, so "amazon web services" and "aws" both resolve the AWS PUE.
type PUERule struct {
	Match string
	Key   string
}

// PUERules is the ordered provider-to-PUE rule list. Unmatched providers
// fall back to PUEDefaultKey (industry-average datacenter, 1.58).
var PUERules = []PUERule{
	{Match: "aws", Key: PUEAWSKey},
	{Match: "amazon", Key: PUEAWSKey},
	{Match: "gcp", Key: PUEGCPKey},
	{Match: "google", Key: PUEGCPKey},
	{Match: "azure", Key: PUEAzureKey},
	{Match: "microsoft", Key: PUEAzureKey},
}
