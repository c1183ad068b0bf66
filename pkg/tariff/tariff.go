// Package tariff provides the canteen meal catalogue: canonical meal names,
// accepted aliases, default prices and the ledger accounts each meal and
// payment mode posts to.
package tariff

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// MealConfig describes one meal slot.
type MealConfig struct {
	Name    string          `yaml:"name"`
	Aliases []string        `yaml:"aliases"`
	Price   decimal.Decimal `yaml:"price"`
	Account string          `yaml:"account"`
}

// ModeAccount maps a payment mode to the asset account receiving it.
type ModeAccount struct {
	Mode    string `yaml:"mode"`
	Account string `yaml:"account"`
}

// Config represents the complete tariff file.
type Config struct {
	Currency string       `yaml:"currency"`
	Meals    []MealConfig `yaml:"meals"`
	Accounts struct {
		Receivable   string        `yaml:"receivable"`
		OtherIncome  string        `yaml:"other_income"`
		DefaultAsset string        `yaml:"default_asset"`
		PaymentModes []ModeAccount `yaml:"payment_modes"`
	} `yaml:"accounts"`
}

// DefaultYAML is the built-in tariff used when no file is configured.
const DefaultYAML = `
currency: INR
meals:
  - name: breakfast
    aliases: [bf, morning, nasta]
    price: 20
    account: Income:Canteen:Breakfast
  - name: lunch
    aliases: [noon]
    price: 40
    account: Income:Canteen:Lunch
  - name: dinner
    aliases: [supper, night]
    price: 40
    account: Income:Canteen:Dinner
accounts:
  receivable: Assets:Receivable:Students
  other_income: Income:Canteen:Other
  default_asset: Assets:Cash
  payment_modes:
    - mode: Cash
      account: Assets:Cash
    - mode: UPI
      account: Assets:Bank:UPI
    - mode: Card
      account: Assets:Bank:Card
`

// Tariff resolves meal names, prices and accounts.
type Tariff struct {
	config   Config
	aliases  map[string]db.Meal
	meals    map[db.Meal]MealConfig
	modeToAc map[string]string
}

// Load reads a tariff from a YAML file. An empty path yields the default tariff.
func Load(path string) (*Tariff, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in tariff.
func Default() *Tariff {
	t, err := Parse([]byte(DefaultYAML))
	if err != nil {
		panic(fmt.Sprintf("tariff: invalid built-in tariff: %v", err))
	}
	return t
}

// Parse builds a Tariff from YAML content.
func Parse(data []byte) (*Tariff, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.Currency == "" {
		config.Currency = "INR"
	}

	t := &Tariff{
		config:   config,
		aliases:  make(map[string]db.Meal),
		meals:    make(map[db.Meal]MealConfig),
		modeToAc: make(map[string]string),
	}
	if err := t.buildMaps(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tariff) buildMaps() error {
	for _, mc := range t.config.Meals {
		meal := db.Meal(strings.ToLower(strings.TrimSpace(mc.Name)))
		switch meal {
		case db.Breakfast, db.Lunch, db.Dinner:
		default:
			return fmt.Errorf("unknown meal %q in tariff", mc.Name)
		}
		if mc.Price.IsNegative() {
			return fmt.Errorf("negative price for %s", meal)
		}

		t.meals[meal] = mc
		t.aliases[string(meal)] = meal
		for _, alias := range mc.Aliases {
			t.aliases[strings.ToLower(strings.TrimSpace(alias))] = meal
		}
	}

	for _, pm := range t.config.Accounts.PaymentModes {
		t.modeToAc[strings.ToLower(pm.Mode)] = pm.Account
	}
	return nil
}

// Currency returns the currency code for formatted amounts.
func (t *Tariff) Currency() string {
	return t.config.Currency
}

// Normalize maps a free-form meal name onto a meal slot.
// The second result is false when the name is not recognised.
func (t *Tariff) Normalize(mealType string) (db.Meal, bool) {
	meal, ok := t.aliases[strings.ToLower(strings.TrimSpace(mealType))]
	return meal, ok
}

// Price returns the default price of a meal, zero when not configured.
func (t *Tariff) Price(meal db.Meal) decimal.Decimal {
	return t.meals[meal].Price
}

// MealAccount returns the income account of a meal.
func (t *Tariff) MealAccount(meal db.Meal) string {
	if account := t.meals[meal].Account; account != "" {
		return account
	}
	return t.OtherIncomeAccount()
}

// OtherIncomeAccount returns the income account for unrecognised items.
func (t *Tariff) OtherIncomeAccount() string {
	if t.config.Accounts.OtherIncome != "" {
		return t.config.Accounts.OtherIncome
	}
	return "Income:Canteen:Other"
}

// ReceivableAccount returns the receivable account of one student.
func (t *Tariff) ReceivableAccount(studentID int64) string {
	root := t.config.Accounts.Receivable
	if root == "" {
		root = "Assets:Receivable:Students"
	}
	return fmt.Sprintf("%s:S%d", root, studentID)
}

// ModeAccount returns the asset account for a payment mode.
func (t *Tariff) ModeAccount(mode string) string {
	if account := t.modeToAc[strings.ToLower(mode)]; account != "" {
		return account
	}
	if t.config.Accounts.DefaultAsset != "" {
		return t.config.Accounts.DefaultAsset
	}
	return "Assets:Cash"
}
