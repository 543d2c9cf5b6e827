package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
)

// Server/Init log prefixes
const (
	LogServer = Green + "[Server]" + Reset
	LogConfig = Cyan + "[Config]" + Reset
	LogHTTP   = Cyan + "[HTTP]" + Reset
)

// Hotel pipeline log prefixes
const (
	LogToken     = Cyan + "[Token]" + Reset
	LogDirectory = Purple + "[Directory]" + Reset
	LogDiscovery = Blue + "[Discovery]" + Reset
	LogSearch    = Blue + "[Search]" + Reset
	LogFallback  = Yellow + "[Fallback]" + Reset
	LogCache     = Blue + "[Cache]" + Reset
	LogPhotos    = Green + "[Photos]" + Reset
)

// Storage and auxiliary services
const (
	LogTrips     = Green + "[Trips]" + Reset
	LogAssistant = Cyan + "[Assistant]" + Reset
	LogRateLimit = Purple + "[RateLimit]" + Reset
	LogWarning   = Red + "[Warning]" + Reset
)
