package pipeline

// DefaultQueries is the curated query set targeting the capital-markets IT
// services niche. Grouped by the lane each block is meant to surface.
var DefaultQueries = []string{
	// Financial-vertical MSPs
	"managed IT services for hedge funds",
	"hedge fund MSP New York",
	"hedge fund IT support NYC",
	"IT managed services for investment management firms",
	"managed IT services for broker dealers",
	"MSP for alternative investment firms",
	"MSP for asset management industry",
	"IT services for private equity firms",

	// Market data ops / admin
	`"market data" "managed services"`,
	`"market data operations" consulting`,
	`"market data administration" services`,
	`"market data" "vendor management" firm`,
	`"market data" "exchange reporting" services`,
	`"market data" cost optimization consultancy`,
	`"market data" inventory management consulting`,

	// Trading infrastructure MSPs
	`"trading infrastructure" "managed services"`,
	`"low latency" "trading" "managed"`,
	`"ultra low latency" "trading" "infrastructure"`,
	`"exchange connectivity" "managed"`,
	`"colocation" "trading" "managed services"`,

	// OMS/EMS/FIX services
	`"OMS implementation" buy side consulting`,
	`"EMS implementation" trading`,
	`"FIX connectivity" consulting firm`,
	`"FIX onboarding" services`,
	`"trading platform" implementation consulting`,
	`"order management system" integration partner`,

	// Reg-ops / compliance ops
	`"outsourced trade surveillance"`,
	`"managed" "trade surveillance" services`,
	`"outsourced compliance" "broker dealer"`,
	`"outsourced CCO" services`,
	`"best execution" "outsourced" testing`,
	`"regulatory reporting" managed services`,
}

// DefaultSkipDomains are aggregator and social domains whose results are
// never operating companies.
var DefaultSkipDomains = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"facebook.com",
	"twitter.com",
	"youtube.com",
	"wikipedia.org",
}
