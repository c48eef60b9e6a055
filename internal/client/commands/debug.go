package commands

import (
	"fmt"
	"strings"
	"time"

	"termchess/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	for _, cmd := range []*Command{
		{Name: "health", ShortName: ".", Description: "Check server health", Usage: "health", Handler: healthHandler},
		{Name: "url", ShortName: "/", Description: "Show or set API base URL", Usage: "url [apiUrl]", Handler: urlHandler},
		{Name: "raw", ShortName: ":", Description: "Send raw API request", Usage: "raw <method> <path> [json-body]", Handler: rawRequestHandler},
		{Name: "trace", ShortName: "", Description: "Toggle request tracing", Usage: "trace [on|off]", Handler: traceHandler},
	} {
		cmd.Group = groupUtility
		r.Register(cmd)
	}
}

func healthHandler(s *Session, _ []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}

	display.Info.Fprintln(s.Out, "Server Health:")
	fmt.Fprintf(s.Out, "  Status:  %s\n", resp.Status)
	fmt.Fprintf(s.Out, "  Time:    %s\n", time.Unix(resp.Time, 0).Format("2006-01-02 15:04:05"))
	if resp.Storage != "" {
		fmt.Fprintf(s.Out, "  Storage: %s\n", resp.Storage)
	}
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "Current API URL: %s\n", s.Client.BaseURL)
		return nil
	}

	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	s.Client.SetBaseURL(url)

	display.Info.Fprintf(s.Out, "API URL set to: %s\n", s.Client.BaseURL)
	return nil
}

func rawRequestHandler(s *Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	body := ""
	if len(args) > 2 {
		body = strings.Join(args[2:], " ")
	}
	return s.Client.RawRequest(strings.ToUpper(args[0]), args[1], body)
}

func traceHandler(s *Session, args []string) error {
	switch {
	case len(args) == 0:
		s.Client.Trace = !s.Client.Trace
	case args[0] == "on":
		s.Client.Trace = true
	case args[0] == "off":
		s.Client.Trace = false
	default:
		return fmt.Errorf("usage: trace [on|off]")
	}
	fmt.Fprintf(s.Out, "Request tracing: %v\n", s.Client.Trace)
	return nil
}
