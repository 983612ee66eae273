package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	apiURL  string
	apiKey  string
	verbose bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "autoscribe",
		Short: "Autoscribe CLI for browser recording sessions",
		Long:  `Autoscribe records a live browser session and continuously turns it into a Playwright test script`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8710", "Autoscribe API URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Autoscribe API key")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	// Bind flags to viper
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Environment variable support
	viper.SetEnvPrefix("AUTOSCRIBE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Add commands
	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(stopCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(scriptCmd())
	rootCmd.AddCommand(recordingsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [url]",
		Short: "Start a recording session",
		Long:  `Start recording browser interactions against the given URL`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return startRecording(args[0])
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active recording session",
		Long:  `Stop recording and print the finished recording summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stopRecording()
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show recorder status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus()
		},
	}
}

func scriptCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the current generated script",
		Long:  `Fetch the live rendered script of the active recording session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchScript(output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script to a file instead of stdout")
	return cmd
}

func recordingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "Recording archive commands",
		Long:  `Commands for browsing and managing finished recordings`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecordings()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [recording-id]",
		Short: "Show one recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRecording(args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete [recording-id]",
		Short: "Delete a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecording(args[0])
		},
	})

	return cmd
}

// Implementation functions

func startRecording(url string) error {
	result, err := apiRequest("POST", "/api/v1/record/start", map[string]string{"url": url})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recording started\n")
	fmt.Printf("  ID:  %v\n", result["id"])
	fmt.Printf("  URL: %v\n", result["url"])
	return nil
}

func stopRecording() error {
	result, err := apiRequest("POST", "/api/v1/record/stop", nil)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recording stopped\n")
	fmt.Printf("  ID:     %v\n", result["id"])
	fmt.Printf("  Events: %v\n", result["event_count"])
	return nil
}

func showStatus() error {
	result, err := apiRequest("GET", "/api/v1/record/status", nil)
	if err != nil {
		return err
	}

	if active, _ := result["active"].(bool); !active {
		fmt.Println("No active recording session")
		return nil
	}

	fmt.Printf("Recording session active\n")
	fmt.Printf("  ID:     %v\n", result["id"])
	fmt.Printf("  URL:    %v\n", result["url"])
	fmt.Printf("  Events: %v\n", result["event_count"])
	return nil
}

func fetchScript(output string) error {
	data, err := apiRequestRaw("GET", "/api/v1/record/script")
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	fmt.Printf("✓ Script written to %s\n", output)
	return nil
}

func listRecordings() error {
	result, err := apiRequest("GET", "/api/v1/recordings", nil)
	if err != nil {
		return err
	}

	recs, _ := result["recordings"].([]interface{})
	if len(recs) == 0 {
		fmt.Println("No recordings")
		return nil
	}

	fmt.Printf("%-38s %-10s %-8s %s\n", "ID", "STATUS", "EVENTS", "URL")
	for _, raw := range recs {
		rec, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("%-38v %-10v %-8v %v\n", rec["id"], rec["status"], rec["event_count"], rec["url"])
	}
	return nil
}

func showRecording(id string) error {
	result, err := apiRequest("GET", "/api/v1/recordings/"+id, nil)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format recording: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func deleteRecording(id string) error {
	if _, err := apiRequestRaw("DELETE", "/api/v1/recordings/"+id); err != nil {
		return err
	}
	fmt.Printf("✓ Recording %s deleted\n", id)
	return nil
}

func apiRequest(method, path string, body interface{}) (map[string]interface{}, error) {
	respData, err := doRequest(method, path, body)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respData, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

func apiRequestRaw(method, path string) ([]byte, error) {
	return doRequest(method, path, nil)
}

func doRequest(method, path string, body interface{}) ([]byte, error) {
	url := viper.GetString("api-url") + path
	key := viper.GetString("api-key")

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "> %s %s\n", method, url)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respData))
	}

	return respData, nil
}
