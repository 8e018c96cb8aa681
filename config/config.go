package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

type Global struct {
	BindAddr string `yaml:"bindAddr" mapstructure:"bindAddr"`
	BindPort int    `yaml:"bindPort" mapstructure:"bindPort"`
}

type Paystack struct {
	SecretKey       string `yaml:"secretKey" mapstructure:"secretKey"`
	PublicKey       string `yaml:"publicKey" mapstructure:"publicKey"`
	CallbackURL     string `yaml:"callbackUrl" mapstructure:"callbackUrl"`
	ReferencePrefix string `yaml:"referencePrefix" mapstructure:"referencePrefix"`
}

type Stripe struct {
	SecretKey        string   `yaml:"secretKey" mapstructure:"secretKey"`
	SuccessURL       string   `yaml:"successUrl" mapstructure:"successUrl"`
	CancelURL        string   `yaml:"cancelUrl" mapstructure:"cancelUrl"`
	DonationPriceIDs []string `yaml:"donationPriceIds" mapstructure:"donationPriceIds"`
}

type ImageKit struct {
	PrivateKey string `yaml:"privateKey" mapstructure:"privateKey"`
}

type Storage struct {
	// Driver is one of memory, sqlite or postgres
	Driver     string `yaml:"driver" mapstructure:"driver"`
	SQLitePath string `yaml:"sqlitePath" mapstructure:"sqlitePath"`

	PostgresUser    string `yaml:"postgresUser" mapstructure:"postgresUser"`
	PostgresPass    string `yaml:"postgresPass" mapstructure:"postgresPass"`
	PostgresHost    string `yaml:"postgresHost" mapstructure:"postgresHost"`
	PostgresPort    int    `yaml:"postgresPort" mapstructure:"postgresPort"`
	PostgresDBName  string `yaml:"postgresDbName" mapstructure:"postgresDbName"`
	PostgresOptions string `yaml:"postgresOptions" mapstructure:"postgresOptions"`
}

type Config struct {
	Global   Global   `yaml:"global" mapstructure:"global"`
	Paystack Paystack `yaml:"paystack" mapstructure:"paystack"`
	Stripe   Stripe   `yaml:"stripe" mapstructure:"stripe"`
	ImageKit ImageKit `yaml:"imagekit" mapstructure:"imagekit"`
	Storage  Storage  `yaml:"storage" mapstructure:"storage"`
}

// LoadConfigYaml reads config.yml from the working directory. A .env file,
// if present, is loaded first so that secret keys can stay out of the yaml
// file; matching environment variables always win over yaml values.
func LoadConfigYaml() (conf Config, err error) {
	// .env is optional, same as the original dev server's dotenv usage
	_ = godotenv.Load()

	b, err := ioutil.ReadFile("config.yml")
	if err != nil {
		return conf, fmt.Errorf("failed to read config.yml: %v", err.Error())
	}
	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to parse config.yml: %v", err.Error())
	}

	applyEnvOverrides(&conf)
	return conf, nil
}

// LoadConfig is the viper-based loader used by the betactl CLI. It reads
// config.yml plus the same environment overrides as LoadConfigYaml.
func LoadConfig() (conf Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	err = v.ReadInConfig()
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %v", err.Error())
	}
	err = v.Unmarshal(&conf)
	if err != nil {
		return conf, fmt.Errorf("failed to unmarshal config: %v", err.Error())
	}

	applyEnvOverrides(&conf)
	return conf, nil
}

func applyEnvOverrides(conf *Config) {
	if v := os.Getenv("PAYSTACK_SECRET_KEY"); v != "" {
		conf.Paystack.SecretKey = v
	}
	if v := os.Getenv("VITE_PAYSTACK_PUBLIC_KEY"); v != "" {
		conf.Paystack.PublicKey = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		conf.Stripe.SecretKey = v
	}
	if v := os.Getenv("IMAGEKIT_PRIVATE_KEY"); v != "" {
		conf.ImageKit.PrivateKey = v
	}
}
