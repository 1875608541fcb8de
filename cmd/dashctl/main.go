package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Addr        string   `short:"a" long:"addr" default:"http://127.0.0.1:8080" description:"Base URL of the dashboard API"`
	Cmd         string   `long:"cmd" required:"true" description:"Command to run: state, stats, set-reading, set-lights, clear-history, pause, resume"`
	Temperature *float64 `short:"t" long:"temperature" description:"Temperature in Celsius for set-reading"`
	Humidity    *float64 `short:"u" long:"humidity" description:"Relative humidity in percent for set-reading"`
	Red         bool     `long:"red" description:"Turn the red light on for set-lights"`
	Green       bool     `long:"green" description:"Turn the green light on for set-lights"`
	Yellow      bool     `long:"yellow" description:"Turn the yellow light on for set-lights"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "dashctl"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	out, err := run(NewClient(opts.Addr), opts)
	if err != nil {
		fmt.Printf("Command %s failed: %v\n", opts.Cmd, err)
		os.Exit(1)
	}
	if out != "" {
		fmt.Println(out)
	}
	fmt.Printf("Command %s completed successfully\n", opts.Cmd)
}

func run(c *Client, opts Options) (string, error) {
	switch opts.Cmd {
	case "state":
		return c.Get("/api/state")
	case "stats":
		return c.Get("/api/history/stats")
	case "set-reading":
		if opts.Temperature == nil || opts.Humidity == nil {
			return "", fmt.Errorf("--temperature and --humidity are required")
		}
		return c.Put("/api/state/reading", map[string]float64{
			"temperature": *opts.Temperature,
			"humidity":    *opts.Humidity,
		})
	case "set-lights":
		return c.Put("/api/state/lights", map[string]bool{
			"red":    opts.Red,
			"green":  opts.Green,
			"yellow": opts.Yellow,
		})
	case "clear-history":
		return c.Delete("/api/history")
	case "pause":
		return c.Put("/api/simulator", map[string]bool{"running": false})
	case "resume":
		return c.Put("/api/simulator", map[string]bool{"running": true})
	default:
		return "", fmt.Errorf("invalid command %q", opts.Cmd)
	}
}
