package config

import "sync"

const (
	VectorStorePgvector = "pgvector"
	VectorStoreMemory   = "memory"
)

type PortfolioConfig struct {
	CSVPath         string
	VectorStore     string
	DefaultNResults int
}

var (
	portfolioConfig *PortfolioConfig
	portfolioOnce   sync.Once
)

func LoadPortfolioConfig() *PortfolioConfig {
	portfolioOnce.Do(func() {
		portfolioConfig = &PortfolioConfig{
			CSVPath:         getEnv("PORTFOLIO_CSV_PATH", "my_portfolio.csv"),
			VectorStore:     getEnv("VECTOR_STORE", VectorStorePgvector),
			DefaultNResults: getEnvInt("PORTFOLIO_N_RESULTS", 2),
		}
	})
	return portfolioConfig
}
