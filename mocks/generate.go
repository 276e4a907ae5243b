package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-quant/internal/indicator Indicator
//go:generate mockgen -destination=./mock_indicator_registry.go -package=mocks github.com/rxtech-lab/argo-quant/internal/indicator IndicatorRegistry
//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/rxtech-lab/argo-quant/pkg/marketdata Source
//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-quant/internal/backtest/engine Engine
