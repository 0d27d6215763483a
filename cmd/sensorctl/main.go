// Command sensorctl is a small command-line client for the sensor API.
//
//	sensorctl [-url URL] [-key KEY] health
//	sensorctl list [-type T] [-limit N] [-offset N]
//	sensorctl get ID
//	sensorctl create -id ID -type T -value V -unit U [-timestamp TS]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"sensor-api/internal/client"
	"sensor-api/internal/models"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "sensorctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("sensorctl", flag.ContinueOnError)
	baseURL := global.String("url", envOr("SENSOR_API_URL", "http://localhost:3000"), "sensor API base URL")
	apiKey := global.String("key", os.Getenv("API_KEY"), "API key used for create")
	traceID := global.String("correlation-id", "", "X-Correlation-ID sent with the request")
	timeout := global.Duration("timeout", 10*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		return fmt.Errorf("missing command: health, list, get or create")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if *traceID != "" {
		ctx = client.WithCorrelationID(ctx, *traceID)
	}
	c := client.New(*baseURL, *apiKey)

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "health":
		health, err := c.Health(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, health)

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		sensorType := fs.String("type", "", "only list sensors of this type")
		limit := fs.Int("limit", -1, "maximum number of sensors")
		offset := fs.Int("offset", -1, "number of sensors to skip")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		filter := models.ListFilter{Type: models.SensorType(*sensorType)}
		if *limit >= 0 {
			filter.Limit = limit
		}
		if *offset >= 0 {
			filter.Offset = offset
		}
		list, err := c.ListSensors(ctx, filter)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("usage: sensorctl get ID")
		}
		sensor, err := c.GetSensor(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, sensor)

	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		id := fs.String("id", "", "sensor_id")
		sensorType := fs.String("type", "", "sensor type")
		value := fs.Float64("value", 0, "reading value")
		unit := fs.String("unit", "", "unit of the reading")
		timestamp := fs.String("timestamp", "", "reading time, defaults to now on the server")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		sensor, err := c.CreateSensor(ctx, models.CreateSensorRequest{
			SensorID:  *id,
			Type:      models.SensorType(*sensorType),
			Value:     *value,
			Unit:      *unit,
			Timestamp: *timestamp,
		})
		if err != nil {
			return err
		}
		return printJSON(out, sensor)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
