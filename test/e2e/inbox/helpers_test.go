package inbox_test

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared flows for the inbox service end-to-end tests.
 * The service runs without SMTP, so verification codes are read back from
 * its JSON logs.
 */

const (
	testImageName = "whisper-inbox-test:latest"
	testPassword  = "hunter22"
)

// TestMain builds the image once for the whole package.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	fmt.Fprintf(os.Stdout, "Building Inbox Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Inbox Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/inbox/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type inboxContainer struct {
	container testcontainers.Container
	baseURL   string
}

// setupInboxContainer starts the service with relaxed rate limits.
func setupInboxContainer(t *testing.T) *inboxContainer {
	t.Helper()
	return startInboxContainer(t, map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	})
}

// setupInboxContainerWithDefaultRateLimits keeps production limits, for the
// rate limit tests only.
func setupInboxContainerWithDefaultRateLimits(t *testing.T) *inboxContainer {
	t.Helper()
	return startInboxContainer(t, nil)
}

func startInboxContainer(t *testing.T, extraEnv map[string]string) *inboxContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("end-to-end tests need docker")
	}
	ctx := context.Background()

	env := map[string]string{
		"INBOX_ISSUER":   "whisper-e2e",
		"INBOX_NUM_KEYS": "1",
		"ENV":            "test",
		"LOG_LEVEL":      "info",
		"LOG_FORMAT":     "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &inboxContainer{
		container: container,
		baseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

func (c *inboxContainer) client() *inboxsdk.SDKClient {
	return inboxsdk.NewSDKClient(c.baseURL)
}

// verificationCode returns the latest code logged for username.
func (c *inboxContainer) verificationCode(t *testing.T, username string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := c.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		sc := bufio.NewScanner(rc)
		for sc.Scan() {
			line := sc.Text()
			start := strings.IndexByte(line, '{')
			if start < 0 {
				continue
			}
			var entry struct {
				Msg      string `json:"msg"`
				Username string `json:"username"`
				Code     string `json:"verification_code"`
			}
			if json.Unmarshal([]byte(line[start:]), &entry) != nil {
				continue
			}
			if entry.Msg == "verification email" && entry.Username == username {
				code = entry.Code
			}
		}
		return code != ""
	}, 10*time.Second, 200*time.Millisecond, "no verification code logged for %s", username)

	return code
}

// registerUser signs up, verifies with the logged code and logs in.
func (c *inboxContainer) registerUser(t *testing.T, username string) *inboxsdk.Session {
	t.Helper()
	ctx := t.Context()
	client := c.client()

	_, err := client.SignUp(ctx, inboxsdk.SignUpRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err, "sign-up should succeed")

	require.NoError(t, client.Verify(ctx, username, c.verificationCode(t, username)), "verify should succeed")

	session, err := client.Login(ctx, username, testPassword)
	require.NoError(t, err, "login should succeed")
	require.NotNil(t, session)
	return session
}

func assertHealthy(t *testing.T, health *inboxsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, inboxsdk.IsStatus(err, status), "expected HTTP %d, got: %v", status, err)
}
