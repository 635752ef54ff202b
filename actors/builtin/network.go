package builtin

// Network parameter: the name reported to actors when none is configured.
const DefaultNetworkName = "vestnet"

const SecondsInHour = 3600
const SecondsInDay = 24 * SecondsInHour
const SecondsInWeek = 7 * SecondsInDay

// A month is taken as thirty days.
const SecondsInMonth = 30 * SecondsInDay
