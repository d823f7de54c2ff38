package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vikas-mobiles/be/models"
)

// CommerceClient talks to the remote commerce REST API that owns products and orders.
// Calls are never retried.
type CommerceClient struct {
	baseURL    string
	assetBase  *url.URL
	httpClient *http.Client
}

// ImageUpload is the file part of a product creation request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

func NewCommerceClient(baseURL, assetBaseURL string, timeout time.Duration) (*CommerceClient, error) {
	assetBase, err := url.Parse(assetBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid asset base url: %w", err)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid commerce api url: %w", err)
	}

	return &CommerceClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		assetBase: assetBase,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ListProducts calls GET /products
func (c *CommerceClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, "list products", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct calls POST /products with a multipart form including the image file.
func (c *CommerceClient) CreateProduct(ctx context.Context, req models.CreateProductRequest, image ImageUpload) (*models.Product, error) {
	const op = "create product"

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	fields := [][2]string{
		{"name", req.Name},
		{"description", req.Description},
		{"price", req.Price},
		{"category", req.Category},
		{"condition", req.Condition},
		{"stock", strconv.Itoa(req.Stock)},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return nil, &models.RemoteError{Op: op, Err: fmt.Errorf("failed to write form field %s: %w", f[0], err)}
		}
	}
	part, err := form.CreateFormFile("image", image.Filename)
	if err != nil {
		return nil, &models.RemoteError{Op: op, Err: fmt.Errorf("failed to create image part: %w", err)}
	}
	if _, err := io.Copy(part, image.Content); err != nil {
		return nil, &models.RemoteError{Op: op, Err: fmt.Errorf("failed to copy image: %w", err)}
	}
	if err := form.Close(); err != nil {
		return nil, &models.RemoteError{Op: op, Err: fmt.Errorf("failed to close form: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", body)
	if err != nil {
		return nil, &models.RemoteError{Op: op, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	var product models.Product
	if err := c.do(op, httpReq, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct calls DELETE /products/{id}
func (c *CommerceClient) DeleteProduct(ctx context.Context, productID string) error {
	return c.doJSON(ctx, "delete product", http.MethodDelete, "/products/"+url.PathEscape(productID), nil, nil)
}

// ListOrders calls GET /orders
func (c *CommerceClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, "list orders", http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder calls POST /orders
func (c *CommerceClient) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, "create order", http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus calls PUT /orders/{id}
func (c *CommerceClient) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	body := models.UpdateOrderStatusRequest{Status: status}
	if err := c.doJSON(ctx, "update order status", http.MethodPut, "/orders/"+url.PathEscape(orderID), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder calls DELETE /orders/{id}
func (c *CommerceClient) DeleteOrder(ctx context.Context, orderID string) error {
	return c.doJSON(ctx, "delete order", http.MethodDelete, "/orders/"+url.PathEscape(orderID), nil, nil)
}

// ProductImageURL resolves a product's relative image path against the asset base URL.
func (c *CommerceClient) ProductImageURL(p models.Product) string {
	if p.Image == "" {
		return ""
	}
	ref, err := url.Parse(strings.ReplaceAll(p.Image, "\\", "/"))
	if err != nil {
		return ""
	}
	return c.assetBase.ResolveReference(ref).String()
}

func (c *CommerceClient) doJSON(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return &models.RemoteError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &models.RemoteError{Op: op, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(op, req, out)
}

func (c *CommerceClient) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.RemoteError{Op: op, Err: fmt.Errorf("failed to call commerce api: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.RemoteError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &models.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}
