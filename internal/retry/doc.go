// Package retry provides automatic retry logic with exponential backoff
// for transient database connection failures.
//
// The package supports pluggable error classification and backoff strategies.
//
// # Example Usage
//
//	classifier := retry.NewMySQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface determines which errors are transient
// (retryable) versus fatal (non-retryable). The MySQLErrorClassifier
// recognizes common transient MySQL failures such as connection refused,
// lost connections and lock contention, while treating authentication
// failures and unknown databases as fatal.
//
// # Backoff Strategies
//
// The BackoffStrategy interface controls retry timing. ExponentialBackoff
// implements exponential backoff with a configurable initial delay, a
// maximum delay cap and optional jitter.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to
// create independent configurations per goroutine.
package retry
