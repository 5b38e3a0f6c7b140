package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceSession RequestSource = "SESSION"
	RequestSourceAPIKey  RequestSource = "API_KEY"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixMemberStats CachePrefix = "MEMBER_STATS_"
	CachePrefixBranchStats CachePrefix = "BRANCH_STATS_"
	CachePrefixRAStats     CachePrefix = "RA_STATS_"
	CachePrefixDutyRoster  CachePrefix = "DUTY_ROSTER_"
)
