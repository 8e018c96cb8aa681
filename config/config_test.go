package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"stlouis-middleware/config"
)

const sampleYaml = `global:
  bindAddr: "127.0.0.1"
  bindPort: 3001
paystack:
  secretKey: "sk_test_fromfile"
  callbackUrl: "https://example.com/donation-success"
  referencePrefix: "STLOUIS"
storage:
  driver: "sqlite"
  sqlitePath: "beta_state.db"
`

func inTempDir(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		err := ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		if err != nil {
			t.Fatalf("failed to write %v: %v", name, err)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfigYaml(t *testing.T) {
	inTempDir(t, map[string]string{"config.yml": sampleYaml})

	conf, err := config.LoadConfigYaml()
	if err != nil {
		t.Fatalf("LoadConfigYaml: %v", err)
	}
	if conf.Global.BindAddr != "127.0.0.1" || conf.Global.BindPort != 3001 {
		t.Errorf("global = %+v", conf.Global)
	}
	if conf.Paystack.SecretKey != "sk_test_fromfile" {
		t.Errorf("secret key = %v", conf.Paystack.SecretKey)
	}
	if conf.Storage.Driver != "sqlite" {
		t.Errorf("storage driver = %v", conf.Storage.Driver)
	}
}

func TestEnvOverridesWinOverYaml(t *testing.T) {
	inTempDir(t, map[string]string{"config.yml": sampleYaml})
	os.Setenv("PAYSTACK_SECRET_KEY", "sk_test_fromenv")
	t.Cleanup(func() { os.Unsetenv("PAYSTACK_SECRET_KEY") })

	conf, err := config.LoadConfigYaml()
	if err != nil {
		t.Fatalf("LoadConfigYaml: %v", err)
	}
	if conf.Paystack.SecretKey != "sk_test_fromenv" {
		t.Errorf("secret key = %v, want env override", conf.Paystack.SecretKey)
	}
}

func TestLoadConfigYamlMissingFile(t *testing.T) {
	inTempDir(t, nil)
	_, err := config.LoadConfigYaml()
	if err == nil {
		t.Fatal("expected an error when config.yml is absent")
	}
}
