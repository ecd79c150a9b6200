package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

// ValkeyClient tracks which post IDs have already been published so the
// collectors never feed the same post into a batch twice.
type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

const (
	VALKEY_TWITTER_KEY = "twitter:processed_posts"
	VALKEY_REDDIT_KEY  = "reddit:processed_posts"

	processedPostTTLSeconds = 86400
)

func valkeyOptions() valkey.ClientOption {
	opts := valkey.ClientOption{
		InitAddress:      []string{os.Getenv("VALKEY_INIT_ADDRESS")},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if os.Getenv("VALKEY_TLS") == "true" {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	return opts
}

func connectValkey() valkey.Client {
	client, err := valkey.NewClient(valkeyOptions())
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error()))
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return client
}

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyInstance = &ValkeyClient{Client: connectValkey()}
	})
	return valkeyInstance
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()
	vc.Client = connectValkey()
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func GetValkeyClient() *ValkeyClient {
	if valkeyInstance == nil {
		panic("[ValkeyClient] Error: Valkey client is not initialized")
	}
	return valkeyInstance
}

// MarkProcessed records a post ID under its source set with a one-day TTL.
func (vc *ValkeyClient) MarkProcessed(ctx context.Context, source string, postID string) error {
	sourceKey := keyFromSource(source)
	completed := []valkey.Completed{
		vc.Client.B().Sadd().Key(sourceKey).Member(postID).Build(),
		vc.Client.B().Expire().Key(sourceKey).Seconds(processedPostTTLSeconds).Build(),
	}

	responses := vc.DoMultiWithRetry(ctx, completed, 3)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return err
		}
	}

	return nil
}

// IsPostProcessed reports whether a post ID was already published.
// Lookup failures count as "not processed": a duplicate post is cheaper
// than a dropped one.
func (vc *ValkeyClient) IsPostProcessed(ctx context.Context, source string, postID string) bool {
	sourceKey := keyFromSource(source)
	res := vc.DoWithRetry(ctx, vc.Client.B().Sismember().Key(sourceKey).Member(postID).Build(), 3)

	if err := res.Error(); isConnectionError(err) {
		vc.recreateClient()
	}

	ok, err := res.AsBool()
	if err != nil {
		return false
	}

	return ok
}

// Ping reports whether the Valkey connection is healthy.
func (vc *ValkeyClient) Ping(ctx context.Context) bool {
	res := vc.Client.Do(ctx, vc.Client.B().Ping().Build())
	return res.Error() == nil
}

func keyFromSource(source string) string {
	switch source {
	case "twitter":
		return VALKEY_TWITTER_KEY
	case "reddit":
		return VALKEY_REDDIT_KEY
	default:
		return source + ":processed_posts"
	}
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] DoMulti failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient()
				}
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(time.Millisecond * 250)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
