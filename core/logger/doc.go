// Package logger provides structured logging based on Zap.
//
// It builds a configured logger (development console encoding or production
// JSON) and integrates with the Fiber request cycle: WithRayID attaches the
// request's ray_id so that all logs for a single import or export request
// can be correlated.
package logger
