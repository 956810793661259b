package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/signin/pkg/authsdk"
)

/*
 * Common constants and helper functions for sign-in service end-to-end tests.
 * Each test gets its own network with a mailpit SMTP sink and a fresh
 * service container seeded with one account.
 */

const (
	testImageName = "signin-auth-test:latest"
	mailpitImage  = "axllent/mailpit:latest"
	mailpitAlias  = "mailpit"
	redisImage    = "redis:7-alpine"
	redisAlias    = "redis"

	seedEmail    = "admin@example.com"
	seedPassword = "Admin123!"
	seedUserName = "admin"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// imageReady is false when docker is unavailable; every test then skips.
var imageReady bool

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found; skipping sign-in e2e tests")
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building Sign-in Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")
	imageReady = true

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Sign-in Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image from the repository root.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// stack is one running service plus the mailpit instance it delivers to.
type stack struct {
	BaseURL    string
	MailpitURL string
}

// relaxedLimits raises the rate limits so flows that make many rapid
// requests are not throttled.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// stackOptions tunes one e2e stack.
type stackOptions struct {
	// Env entries override the service defaults.
	Env map[string]string
	// Redis runs a redis container and points the code store at it.
	Redis bool
}

// setupStack starts mailpit and the sign-in service on a private network.
func setupStack(t *testing.T, opts stackOptions) *stack {
	t.Helper()
	if !imageReady {
		t.Skip("docker image not built")
	}
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := nw.Remove(ctx); err != nil {
			t.Logf("failed to remove network: %v", err)
		}
	})

	mailpit, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          mailpitImage,
			ExposedPorts:   []string{"8025/tcp"},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {mailpitAlias}},
			WaitingFor:     wait.ForHTTP("/livez").WithPort("8025/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { terminate(t, mailpit) })

	if opts.Redis {
		redis, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:          redisImage,
				Networks:       []string{nw.Name},
				NetworkAliases: map[string][]string{nw.Name: {redisAlias}},
				WaitingFor:     wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		require.NoError(t, err)
		t.Cleanup(func() { terminate(t, redis) })
	}

	env := map[string]string{
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"SMTP_HOST":          mailpitAlias,
		"SMTP_PORT":          "1025",
		"SMTP_TLS_POLICY":    "none",
		"SMTP_FROM_EMAIL":    "no-reply@signin.test",
		"BOOTSTRAP_EMAIL":    seedEmail,
		"BOOTSTRAP_PASSWORD": seedPassword,
		"BOOTSTRAP_USERNAME": seedUserName,
	}
	if opts.Redis {
		env["OTP_STORE"] = "redis"
		env["REDIS_ADDR"] = redisAlias + ":6379"
	}
	maps.Copy(env, opts.Env)

	service, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Networks:     []string{nw.Name},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { terminate(t, service) })

	return &stack{
		BaseURL:    endpoint(t, service, "8080"),
		MailpitURL: endpoint(t, mailpit, "8025"),
	}
}

func endpoint(t *testing.T, c testcontainers.Container, port string) string {
	t.Helper()
	ctx := context.Background()

	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	host, err := c.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

func terminate(t *testing.T, c testcontainers.Container) {
	if err := c.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

type mailpitMessage struct {
	ID      string `json:"ID"`
	Subject string `json:"Subject"`
	Snippet string `json:"Snippet"`
	To      []struct {
		Address string `json:"Address"`
	} `json:"To"`
}

// messagesTo lists the messages mailpit holds for addr, newest first.
func (s *stack) messagesTo(addr string) ([]mailpitMessage, error) {
	resp, err := http.Get(s.MailpitURL + "/api/v1/messages")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var listing struct {
		Messages []mailpitMessage `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	var out []mailpitMessage
	for _, m := range listing.Messages {
		for _, to := range m.To {
			if strings.EqualFold(to.Address, addr) {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// mailCount returns how many messages addr has received so far.
func (s *stack) mailCount(t *testing.T, addr string) int {
	t.Helper()
	msgs, err := s.messagesTo(addr)
	require.NoError(t, err)
	return len(msgs)
}

// waitForCode waits for addr to receive more than seen messages and returns
// the code in the newest one.
func (s *stack) waitForCode(t *testing.T, addr string, seen int) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		msgs, err := s.messagesTo(addr)
		if err != nil || len(msgs) <= seen {
			return false
		}
		code = codePattern.FindString(msgs[0].Snippet)
		return code != ""
	}, 15*time.Second, 200*time.Millisecond, "no sign-in code delivered to %s", addr)

	return code
}

// enableEmailTwoFactor signs in as the seed account and turns on both
// two-factor switches, then logs out.
func enableEmailTwoFactor(t *testing.T, s *stack) {
	t.Helper()
	ctx := t.Context()

	client := authsdk.NewClient(s.BaseURL)
	resp, err := client.Login(ctx, seedEmail, seedPassword, false)
	require.NoError(t, err)
	require.True(t, resp.Success)

	_, err = client.ToggleTwoFactor(ctx, true)
	require.NoError(t, err)
	_, err = client.ToggleEmailTwoFactor(ctx, true)
	require.NoError(t, err)

	_, err = client.Logout(ctx)
	require.NoError(t, err)
}

// startChallenge logs in with the seed account and expects an email challenge.
func startChallenge(t *testing.T, s *stack, client *authsdk.Client) string {
	t.Helper()
	seen := s.mailCount(t, seedEmail)

	resp, err := client.Login(t.Context(), seedEmail, seedPassword, false)
	require.NoError(t, err)
	require.True(t, resp.RequiresEmailTwoFactor)
	require.Equal(t, seedEmail, resp.Email)
	require.Nil(t, resp.User)

	return s.waitForCode(t, seedEmail, seen)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
