package main

// Exercise the analysis prompt against a real provider:
//   go run ./cmd/prompttest -resume path/to/resume.pdf -job-title "Backend Engineer"

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/ai/openai"
	"resumind-backend/internal/extract"
	"resumind-backend/internal/feedback"
	"resumind-backend/internal/prompt"
	"resumind-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume PDF")
	jobTitle := flag.String("job-title", "", "Target job title")
	jdPath := flag.String("jd", "", "Path to job description file (optional)")
	outPath := flag.String("out", "", "Path to write raw JSON output (optional)")
	provider := flag.String("provider", cfg.AIProvider, "Completion provider")
	model := flag.String("model", cfg.AIModel, "Completion model")
	dryRun := flag.Bool("dry-run", false, "Print the built instructions without calling the provider")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}

	resumeText, err := extract.Text(context.Background(), resumeBytes)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}

	jobDescription := ""
	if strings.TrimSpace(*jdPath) != "" {
		jdBytes, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("read job description: %v", err))
		}
		jobDescription = string(jdBytes)
	}

	instructions := prompt.BuildInstructions(prompt.Input{
		JobTitle:       *jobTitle,
		JobDescription: jobDescription,
		ResumeText:     resumeText,
	})

	if *dryRun {
		fmt.Println(instructions)
		return
	}

	client, err := buildClient(*provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	msg, err := client.Complete(context.Background(), instructions)
	if err != nil {
		exitErr(fmt.Sprintf("complete: %v", err))
	}

	raw := msg.Content.Text()
	if _, err := feedback.Parse(raw); err != nil {
		exitErr(fmt.Sprintf("invalid feedback shape: %v", err))
	}

	pretty, err := prettyJSON([]byte(raw))
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func buildClient(provider, model string) (ai.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
