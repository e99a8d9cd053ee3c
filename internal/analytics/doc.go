// Package analytics provides deterministic statistical analysis over
// one-dimensional series: descriptive statistics, least-squares trend
// detection, z-score anomaly detection, linear forecasting with confidence
// intervals, correlation matrices and derived insights.
//
// All functions are pure and validate their inputs: series need at least two
// finite points, so no operation can divide by zero or emit NaN into a
// response.
package analytics
