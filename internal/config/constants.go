package config

// DefaultDatabasePath is the default path for the restaurant database.
const DefaultDatabasePath = "./lunch.db"

// DefaultHistoryRetention matches how many picks are kept for repeat avoidance.
const DefaultHistoryRetention = 14
