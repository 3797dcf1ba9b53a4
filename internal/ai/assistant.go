// Package ai is an optional Gemini-backed assistant that answers questions
// about the shop by calling the catalog and reporting services as tools.
// Read-only: it never mutates the store.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopledger/internal/catalog"
	"shopledger/internal/reports"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Assistant struct {
	catalog *catalog.Service
	reports *reports.Service
	apiKey  string
}

func NewAssistant(catalogSvc *catalog.Service, reportsSvc *reports.Service, apiKey string) *Assistant {
	return &Assistant{catalog: catalogSvc, reports: reportsSvc, apiKey: apiKey}
}

func (a *Assistant) Enabled() bool {
	return a.apiKey != ""
}

func (a *Assistant) Ask(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are a bookkeeping assistant for a small shop.

RULES:
1. READ: For PRICE, COST, STOCK, or DETAILS of a product, call 'check_inventory'
   and read the JSON to answer. You CAN always get product details this way.
2. SALES: For revenue or sales counts, use 'get_sales_report'.
3. You cannot change anything; answer from the data you fetch.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Cost, or Stock.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and order count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return a.runInventoryTool(ctx, session)
			case "get_sales_report":
				return a.runReportTool(ctx, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

func (a *Assistant) runInventoryTool(ctx context.Context, session *genai.ChatSession) (string, error) {
	products, err := a.catalog.ListProducts()
	if err != nil {
		return "", err
	}

	type simpleProduct struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
		Price string `json:"price"`
		Cost  string `json:"cost"`
	}
	simpleList := make([]simpleProduct, 0, len(products))
	for _, p := range products {
		simpleList = append(simpleList, simpleProduct{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
			Price: p.SalePrice.StringFixed(2),
			Cost:  p.CostPrice.StringFixed(2),
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func (a *Assistant) runReportTool(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	revenue, err := a.reports.RevenueBetween(start, end)
	if err != nil {
		return "", err
	}
	count, err := a.reports.SalesCountBetween(start, end)
	if err != nil {
		return "", err
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     revenue.StringFixed(2),
			"sales_count": count,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
