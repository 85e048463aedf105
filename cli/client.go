package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient talks to the LunchLink API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("LUNCHLINK_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}
	return true, nil
}

// MenuItem is a dish on a daily menu
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Calories    int      `json:"calories"`
	DietaryTags []string `json:"dietaryTags,omitempty"`
}

// DailyMenu is the published menu for one date
type DailyMenu struct {
	ID    string     `json:"id"`
	Date  string     `json:"date"`
	Items []MenuItem `json:"items"`
	Notes string     `json:"notes,omitempty"`
}

// WeekDay is one slot of the week view
type WeekDay struct {
	Date           string     `json:"date"`
	Menu           *DailyMenu `json:"menu,omitempty"`
	OrderingClosed bool       `json:"orderingClosed"`
}

// Order is a lunch order against a daily menu
type Order struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	GuestName    string    `json:"guestName,omitempty"`
	MenuDate     string    `json:"menuDate"`
	ItemIDs      []string  `json:"itemIds"`
	Instructions string    `json:"instructions,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DeliveryGroup is one drop-off bucket on the run sheet
type DeliveryGroup struct {
	Label  string  `json:"label"`
	Orders []Order `json:"orders"`
}

// Login authenticates by identifier and stores the session token
func (c *ApiClient) Login(identifier string) error {
	body, _ := json.Marshal(map[string]string{"identifier": identifier})
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status code: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	c.Token = result.Token
	return nil
}

func (c *ApiClient) get(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request %s failed: %s", path, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *ApiClient) send(method, path string, payload, out interface{}) error {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request %s failed: %s", path, string(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetWeek retrieves the week view at the given offset
func (c *ApiClient) GetWeek(offset int) ([]WeekDay, error) {
	var result struct {
		Days []WeekDay `json:"days"`
	}
	if err := c.get(fmt.Sprintf("/api/v1/week?offset=%d", offset), &result); err != nil {
		return nil, err
	}
	return result.Days, nil
}

// GetOrders retrieves the orders visible to the logged-in user
func (c *ApiClient) GetOrders() ([]Order, error) {
	var orders []Order
	if err := c.get("/api/v1/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus advances an order's lifecycle
func (c *ApiClient) UpdateOrderStatus(id, status string) error {
	return c.send("PUT", "/api/v1/kitchen/orders/"+id+"/status", map[string]string{"status": status}, nil)
}

// GetDeliveryGroups retrieves today's delivery run sheet
func (c *ApiClient) GetDeliveryGroups() ([]DeliveryGroup, error) {
	var result struct {
		Groups []DeliveryGroup `json:"groups"`
	}
	if err := c.get("/api/v1/delivery/groups", &result); err != nil {
		return nil, err
	}
	return result.Groups, nil
}

// DeliverOrders marks a batch of orders delivered
func (c *ApiClient) DeliverOrders(ids []string) (int, error) {
	var result struct {
		Delivered int `json:"delivered"`
	}
	if err := c.send("POST", "/api/v1/delivery/deliver", map[string][]string{"orderIds": ids}, &result); err != nil {
		return 0, err
	}
	return result.Delivered, nil
}
