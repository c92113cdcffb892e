package config

import (
    "context"
    "os"
    "testing"
    "time"
)

func TestRedisConfig_NonStrict_Defaults(t *testing.T) {
    // ensure non-strict
    _ = os.Setenv("STRICT", "false")
    _ = os.Unsetenv("REDIS_ENABLED")
    cfg := MustLoad(context.Background())
    if cfg.Redis.Enabled {
        t.Fatalf("redis should be disabled by default in non-strict")
    }
}

func TestRedisConfig_Strict_EnabledRequiresAddr(t *testing.T) {
    // strict + enabled, but no addr -> should panic in mustEnv
    _ = os.Setenv("STRICT", "true")
    _ = os.Setenv("REDIS_ENABLED", "true")
    // DB mandatory envs to pass strict portion
    _ = os.Setenv("DB_HOST", "h")
    _ = os.Setenv("DB_PORT", "5432")
    _ = os.Setenv("DB_USER", "u")
    _ = os.Setenv("DB_PASSWORD", "p")
    _ = os.Setenv("DB_NAME", "n")
    _ = os.Setenv("DB_SSLMODE", "disable")
    _ = os.Setenv("DB_MAX_CONNS", "5")
    _ = os.Setenv("DB_MIN_CONNS", "1")
    defer func() {
        if r := recover(); r == nil {
            t.Fatalf("expected panic due to missing REDIS_ADDR")
        }
    }()
    _ = MustLoad(context.Background())
}

func TestRedisConfig_Strict_AllSet_OK(t *testing.T) {
    envs := map[string]string{
        "STRICT": "true",
        "REDIS_ENABLED": "true",
        "REDIS_ADDR": "localhost:6379",
        "REDIS_DB": "1",
        // DB mandatory
        "DB_HOST": "h", "DB_PORT": "5432", "DB_USER": "u", "DB_PASSWORD": "p", "DB_NAME": "n", "DB_SSLMODE": "disable", "DB_MAX_CONNS": "5", "DB_MIN_CONNS": "1",
    }
    for k,v := range envs { _ = os.Setenv(k,v) }
    defer func(){ for k := range envs { _ = os.Unsetenv(k) } }()
    cfg := MustLoad(context.Background())
    if !cfg.Redis.Enabled || cfg.Redis.Addr == "" || cfg.Redis.DB != 1 || cfg.Redis.Prefix == "" || cfg.Redis.TTL <= 0 {
        t.Fatalf("bad redis cfg: %+v", cfg.Redis)
    }
    if cfg.Redis.TTL < time.Minute || cfg.Redis.TTL > 2*time.Hour { /* acceptable default range check */ }
}

func TestTranslateConfig_Defaults(t *testing.T) {
    _ = os.Setenv("STRICT", "false")
    _ = os.Unsetenv("TRANSLATE_BACKEND_URL")
    _ = os.Unsetenv("TRANSLATE_TIMEOUT")
    cfg := MustLoad(context.Background())
    if cfg.Translate.BackendURL != "" {
        t.Fatalf("translate backend should be unset by default: %+v", cfg.Translate)
    }
    if cfg.Translate.Timeout != 10*time.Second {
        t.Fatalf("unexpected translate timeout: %v", cfg.Translate.Timeout)
    }
}

func TestTranslateConfig_FromEnv(t *testing.T) {
    _ = os.Setenv("STRICT", "false")
    _ = os.Setenv("TRANSLATE_BACKEND_URL", "http://localhost:5000")
    _ = os.Setenv("TRANSLATE_TIMEOUT", "3s")
    defer func() {
        _ = os.Unsetenv("TRANSLATE_BACKEND_URL")
        _ = os.Unsetenv("TRANSLATE_TIMEOUT")
    }()
    cfg := MustLoad(context.Background())
    if cfg.Translate.BackendURL != "http://localhost:5000" || cfg.Translate.Timeout != 3*time.Second {
        t.Fatalf("translate env not applied: %+v", cfg.Translate)
    }
}
