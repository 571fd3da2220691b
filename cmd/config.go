package cmd

import "time"

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	ProviderTimeout    time.Duration
	LogisticsAccountID string
	PullSchedule       string
	ProcessSchedule    string
	ProcessBatchLimit  int
}
