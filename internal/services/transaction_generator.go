package services

import (
	"sort"
	"sync"
	"time"

	"transactions-dashboard/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// depositRatio is the share of generated transactions that are deposits
const depositRatio = 0.3

type categoryProfile struct {
	name      string
	txType    models.TransactionType
	minAmount float64
	maxAmount float64
	titles    []string
}

var categoryProfiles = []categoryProfile{
	{"Desenvolvimento", models.TransactionTypeDeposit, 1500, 20000, []string{"Desenvolvimento de Website", "Desenvolvimento de App", "Manutenção de sistema"}},
	{"Salário", models.TransactionTypeDeposit, 3000, 15000, []string{"Salário", "Adiantamento salarial"}},
	{"Freelance", models.TransactionTypeDeposit, 300, 5000, []string{"Consultoria", "Projeto freelance", "Design de logo"}},
	{"Investimentos", models.TransactionTypeDeposit, 50, 2000, []string{"Dividendos", "Rendimento CDB"}},

	{"Casa", models.TransactionTypeWithdraw, 80, 3500, []string{"Aluguel", "Condomínio", "Conta de luz", "Conta de água", "Internet"}},
	{"Alimentação", models.TransactionTypeWithdraw, 15, 900, []string{"Supermercado", "Restaurante", "Padaria", "Delivery"}},
	{"Transporte", models.TransactionTypeWithdraw, 10, 400, []string{"Combustível", "Uber", "Estacionamento", "Passagem de ônibus"}},
	{"Lazer", models.TransactionTypeWithdraw, 20, 1200, []string{"Cinema", "Streaming", "Show", "Viagem"}},
	{"Saúde", models.TransactionTypeWithdraw, 30, 800, []string{"Farmácia", "Consulta", "Academia", "Plano de saúde"}},
	{"Educação", models.TransactionTypeWithdraw, 40, 1500, []string{"Curso online", "Livros", "Mensalidade"}},
}

type transactionGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewTransactionGenerator creates a new transaction generator
func NewTransactionGenerator() TransactionGeneratorInterface {
	return NewTransactionGeneratorWithSeed(uint64(time.Now().UnixNano()))
}

// NewTransactionGeneratorWithSeed creates a generator that produces the same data for the same seed
func NewTransactionGeneratorWithSeed(seed uint64) TransactionGeneratorInterface {
	return &transactionGenerator{
		faker: gofakeit.New(seed),
	}
}

// GetCategories returns every category the generator can produce
func (g *transactionGenerator) GetCategories() []string {
	categories := make([]string, 0, len(categoryProfiles))
	for _, profile := range categoryProfiles {
		categories = append(categories, profile.name)
	}
	return categories
}

// GenerateTransactions generates count transactions between the two dates,
// ordered by creation date
func (g *transactionGenerator) GenerateTransactions(startDate, endDate time.Time, count int) []models.Transaction {
	if count <= 0 {
		return []models.Transaction{}
	}

	transactions := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		transactions = append(transactions, g.GenerateTransaction(startDate, endDate))
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.Time.Before(transactions[j].CreatedAt.Time)
	})

	return transactions
}

// GenerateTransaction generates a single unsaved transaction
func (g *transactionGenerator) GenerateTransaction(startDate, endDate time.Time) models.Transaction {
	txType := g.GenerateTransactionType()
	profile := g.selectProfile(txType)

	g.mu.Lock()
	title := g.faker.RandomString(profile.titles)
	if txType == models.TransactionTypeDeposit && profile.name != "Salário" {
		title += " - " + g.faker.Company()
	}
	g.mu.Unlock()

	return models.Transaction{
		Title:     title,
		Amount:    g.GenerateAmount(profile.name),
		Type:      txType,
		Category:  profile.name,
		CreatedAt: models.NewTransactionDate(g.GenerateTimestamp(startDate, endDate)),
	}
}

// GenerateTransactionType returns deposit roughly 30% of the time
func (g *transactionGenerator) GenerateTransactionType() models.TransactionType {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.faker.Float64() < depositRatio {
		return models.TransactionTypeDeposit
	}
	return models.TransactionTypeWithdraw
}

// GenerateAmount generates a realistic amount for the category, rounded to cents
func (g *transactionGenerator) GenerateAmount(category string) decimal.Decimal {
	minValue, maxValue := 10.0, 100.0
	for _, profile := range categoryProfiles {
		if profile.name == category {
			minValue, maxValue = profile.minAmount, profile.maxAmount
			break
		}
	}

	g.mu.Lock()
	amount := g.faker.Price(minValue, maxValue)
	g.mu.Unlock()

	rounded := decimal.NewFromFloat(amount).Round(2)
	if rounded.LessThan(decimal.NewFromFloat(minValue)) {
		rounded = decimal.NewFromFloat(minValue).Round(2)
	}
	return rounded
}

// GenerateTimestamp generates a random UTC timestamp within the date range, truncated to the second
func (g *transactionGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	if !endDate.After(startDate) {
		return startDate.UTC().Truncate(time.Second)
	}

	g.mu.Lock()
	timestamp := g.faker.DateRange(startDate, endDate)
	g.mu.Unlock()

	return timestamp.UTC().Truncate(time.Second)
}

func (g *transactionGenerator) selectProfile(txType models.TransactionType) categoryProfile {
	candidates := make([]categoryProfile, 0, len(categoryProfiles))
	for _, profile := range categoryProfiles {
		if profile.txType == txType {
			candidates = append(candidates, profile)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return candidates[g.faker.Number(0, len(candidates)-1)]
}
