package logstream

import (
	"fmt"

	"pipeterm/internal/rng"
)

type noiseFunc func(r rng.Source) (Level, string)

func static(level Level, msg string) noiseFunc {
	return func(rng.Source) (Level, string) { return level, msg }
}

// noise is the background chatter, grouped by level.
var noise = []noiseFunc{
	func(r rng.Source) (Level, string) {
		return Debug, fmt.Sprintf("Memory usage: %dMB", 50+r.Intn(30))
	},
	func(r rng.Source) (Level, string) {
		return Debug, fmt.Sprintf("Go heap in use: %dMB", 60+r.Intn(30))
	},
	static(Debug, "Garbage collection completed in 12ms"),
	static(Debug, "Cache miss: /assets/logo.svg"),
	static(Debug, "Service worker ping"),
	static(Debug, "Socket reconnect attempt #1"),
	static(Debug, "Keepalive sent on channel 0"),
	static(Debug, "LRU cache pruning 4 entries"),
	static(Debug, "Feature flag `new-ui` evaluated: false"),
	static(Debug, "Prefetch queue size: 3"),
	static(Debug, "Session store transaction started"),
	static(Debug, "Render pass 2 completed"),
	static(Debug, "Style recompute: 8ms"),
	static(Debug, "Input latency: 14ms"),
	static(Debug, "HTTP cache-control: max-age=3600"),
	static(Debug, "Disk quota check OK"),
	static(Debug, "Frame budget healthy"),
	static(Debug, "Route change diff: 2 components"),
	static(Debug, "Worker goroutine spawned"),
	static(Debug, "Task scheduler flushed"),

	static(Info, "Heartbeat check: OK"),
	static(Info, "User session validated"),
	static(Info, "CDN purge request queued"),
	static(Info, "AWS Lambda function executed successfully"),
	static(Info, "AWS S3 bucket backup completed"),
	static(Info, "AWS EC2 instance started"),
	static(Info, "AWS RDS database backup completed"),
	static(Info, "New deployment detected: v1.4.2"),
	static(Info, "Configuration reloaded from /etc/app/config"),
	static(Info, "Healthcheck passed: api/v1/status"),
	static(Info, "Telemetry flushed to metrics pipeline"),
	static(Info, "Connected to upstream cache"),
	static(Info, "Background job completed: thumbnails"),
	static(Info, "Sitemap updated"),
	static(Info, "License check OK"),

	static(Success, "Asset cache hit"),
	static(Success, "AWS CloudFormation stack created"),
	static(Success, "User uploaded avatar processed"),
	static(Success, "Image optimization finished"),
	static(Success, "Email delivery confirmed"),
	static(Success, "Backup archive verified"),
	static(Success, "Workflow job succeeded: test-suite"),
	static(Success, "Database migration applied"),
	static(Success, "Cache warmed for route /docs"),
	static(Success, "Certificate renewed successfully"),

	static(Warn, "API rate limit near threshold"),
	static(Warn, "Disk usage 82% on /var"),
	static(Warn, "Slow query detected: 1.2s"),
	static(Warn, "Deprecated API call used by client"),
	static(Warn, "Unusual login location detected"),
}
