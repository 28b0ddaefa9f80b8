// Command authkit-inspect reads a persisted session from a Redis-backed
// storage surface, decodes every field through the obfuscation codec, and
// reports the integrity verdict. It is a support tool: when a member
// reports an unexpected forced logout, this shows which check failed.
//
// Run:
//
//	authkit-inspect -config authkit.env
//	authkit-inspect -redis-addr localhost:6379 -prefix ak
//
// Output includes the raw security_block timestamp when present, which is
// deliberately stored outside the codec so this tool can read it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	authkit "github.com/powergym/authkit"
	"github.com/powergym/authkit/codec"
	"github.com/powergym/authkit/session"
	"github.com/powergym/authkit/storage"
	"github.com/powergym/authkit/token"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to an authkit .env config file")
		redisAddr  = flag.String("redis-addr", "", "redis address; overrides the config file")
		redisDB    = flag.Int("redis-db", 0, "redis database number")
		prefix     = flag.String("prefix", "", "storage key prefix; overrides the config file")
		secretKey  = flag.String("secret", "", "codec secret key; overrides the config file")
	)
	flag.Parse()

	cfg, rs, err := authkit.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(2)
	}

	addr := rs.Addr
	if *redisAddr != "" {
		addr = *redisAddr
	}
	if addr == "" {
		fmt.Fprintln(os.Stderr, "a redis address is required (-redis-addr or AUTHKIT_REDIS_ADDR)")
		os.Exit(2)
	}

	db := rs.DB
	if *redisDB != 0 {
		db = *redisDB
	}
	keyPrefix := cfg.Session.RedisPrefix
	if *prefix != "" {
		keyPrefix = *prefix
	}
	secret := cfg.Codec.SecretKey
	if *secretKey != "" {
		secret = *secretKey
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{addr},
		Password: rs.Password,
		DB:       db,
	})
	defer client.Close()

	c, err := codec.New(secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating codec: %v\n", err)
		os.Exit(2)
	}

	surface := storage.NewRedis(client, keyPrefix, log)
	store := session.NewStore(surface, c)

	fmt.Printf("session at %s (prefix %q)\n\n", addr, keyPrefix)

	snap := store.ReadSnapshot()
	printField("token", snap.Token)
	printField("Role", snap.Profile.Role)
	printField("id_Usuario", snap.Profile.UserID)
	printField("user_id", snap.Profile.UserRef)
	printField("nombre", snap.Profile.Name)
	printField("correo", snap.Profile.Email)
	printField("token_checksum", snap.TokenChecksum)
	printField("data_checksum", snap.DataChecksum)

	if raw, ok := surface.Get(session.KeySecurityBlock); ok {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			fmt.Printf("  %-16s %s\n", "security_block", time.UnixMilli(ms).Format(time.RFC3339))
		} else {
			printField("security_block", raw)
		}
	}

	fmt.Println()

	if snap.Token != "" {
		if claims, err := token.Decode(snap.Token); err == nil {
			fmt.Printf("claims: id=%s user_id=%s correo=%s rol=%s\n", claims.ID, claims.UserRef, claims.Email, claims.Role)
			if claims.ExpiresAt != nil {
				fmt.Printf("expires: %s (expired: %v)\n", claims.ExpiresAt.Time.Format(time.RFC3339), claims.Expired(time.Now()))
			} else {
				fmt.Println("expires: no exp claim (treated as expired)")
			}
		} else {
			fmt.Printf("claims: undecodable (%v)\n", err)
		}
		fmt.Println()
	}

	if err := store.Verify(); err != nil {
		fmt.Printf("integrity: FAIL (%v)\n", err)
		os.Exit(1)
	}
	fmt.Println("integrity: OK")
}

func printField(name, value string) {
	if value == "" {
		fmt.Printf("  %-16s (absent)\n", name)
		return
	}
	fmt.Printf("  %-16s %s\n", name, value)
}
