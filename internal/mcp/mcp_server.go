// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the bikecast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, svc *core.Service, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Bikecast Rental Demand Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		svc:     svc.WithSource("mcp"),
		mgr:     mgr,
	}

	// --- 1. Tool: predict_rentals ---
	s.AddTool(mcp.NewTool("predict_rentals",
		mcp.WithDescription("Predict the daily bike rental count for the given weather and calendar conditions."),
		mcp.WithNumber(schema.FieldYear, mcp.Description("Year indicator: 0 for 2018, 1 for 2019."), mcp.Required()),
		mcp.WithNumber(schema.FieldTemperature, mcp.Description("Temperature in Celsius."), mcp.Required()),
		mcp.WithNumber(schema.FieldHumidity, mcp.Description("Relative humidity in percent."), mcp.Required()),
		mcp.WithNumber(schema.FieldWindspeed, mcp.Description("Wind speed in km/h."), mcp.Required()),
		mcp.WithString(schema.FieldSeason, mcp.Description("Season."), mcp.Enum("Spring", "Summer", "Fall", "Winter"), mcp.Required()),
		mcp.WithString(schema.FieldMonth, mcp.Description("Three-letter month abbreviation (Jan..Dec)."), mcp.Required()),
		mcp.WithString(schema.FieldWeather, mcp.Description("Weather condition. Thunderstrom is the legacy spelling of Thunderstorm."), mcp.Enum("Clear", "Light_rainfall", "Thunderstorm", string(schema.LegacyThunderstorm)), mcp.Required()),
		mcp.WithString(schema.FieldWeekday, mcp.Description("Weekday."), mcp.Enum("Mon", "Tue", "Wed", "Thurs", "Fri", "Sat", "Sun"), mcp.Required()),
		mcp.WithNumber(schema.FieldHoliday, mcp.Description("1 if the day is a holiday. Defaults to 0.")),
		mcp.WithNumber(schema.FieldWorkingDay, mcp.Description("1 if the day is a working day. Defaults to 1.")),
	), h.handlePredictRentals)

	// --- 2. Tool: describe_model ---
	s.AddTool(mcp.NewTool("describe_model",
		mcp.WithDescription("Describe the linear model: intercept, coefficients, scaling constants and feature columns."),
	), h.handleDescribeModel)

	// --- 3. Tool: get_history_status ---
	s.AddTool(mcp.NewTool("get_history_status",
		mcp.WithDescription("Summarize stored prediction history, when a history backend is configured."),
	), h.handleHistoryStatus)

	return s
}

// StartMCPServer starts the bikecast MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, svc *core.Service, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, svc, mgr)
	return server.ServeStdio(s)
}
