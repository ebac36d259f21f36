package config

import "time"

// Base application details
const AppName = "tidemark"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tidemark.log"

// Editor backends
const (
	BackendBuffer   = "buffer"   // line-slice buffer with history
	BackendTextarea = "textarea" // bubbles textarea
)

// UI Layout
const StatusBarHeight = 1
const ToolbarHeight = 1

// Input Behavior
const DefaultLeaderKey = ","
const LeaderTimeout = 500 * time.Millisecond

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = false

// Rendering
const DefaultRenderStyle = "auto"
const DefaultWordWrap = 80
