package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"oliu-backend/internal/config"
	"oliu-backend/internal/metrics"
	"oliu-backend/internal/models"
	"oliu-backend/internal/repositories"
	"oliu-backend/internal/textutil"
)

// VietQRService generates bank transfer QR codes for stored orders through
// the VietQR generate API. The provider is an opaque remote call; any
// failure surfaces as a ProviderError, distinct from row store errors.
type VietQRService struct {
	client  *http.Client
	baseURL string
	store   repositories.RowStore
	cfg     *config.Config
}

type vietQRRequest struct {
	AccountNo   string `json:"accountNo"`
	AccountName string `json:"accountName"`
	AcqID       string `json:"acqId"`
	Amount      int64  `json:"amount"`
	AddInfo     string `json:"addInfo"`
	Template    string `json:"template"`
}

type vietQRResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data *struct {
		QRDataURL string `json:"qrDataURL"`
	} `json:"data"`
}

func NewVietQRService(store repositories.RowStore, cfg *config.Config) *VietQRService {
	return &VietQRService{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: cfg.Payment.BaseURL,
		store:   store,
		cfg:     cfg,
	}
}

// GenerateOrderQR builds the transfer QR for an order: the amount comes from
// the order's total-due column and the transfer reference is
// "<prefix> <order number> <normalized salesperson>" so incoming bank
// statements can be matched back to orders.
func (s *VietQRService) GenerateOrderQR(ctx context.Context, orderID int) (*models.PaymentQRResponse, error) {
	record, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	amount := textutil.ParseMoney(record.Get(s.cfg.Report.TotalDueHeader))
	if amount <= 0 {
		return nil, models.NewConfigurationError("order %d has no payable total in column %q", orderID, s.cfg.Report.TotalDueHeader)
	}

	reference := fmt.Sprintf("%s %d %s",
		s.cfg.Payment.ReferencePrefix,
		orderID,
		textutil.Normalize(record.Get(s.cfg.Report.SalespersonHeader)))

	qrURL, err := s.generate(ctx, amount, reference)
	if err != nil {
		return nil, err
	}

	metrics.PaymentQRsGeneratedTotal.Inc()
	return &models.PaymentQRResponse{
		OrderID:     orderID,
		AccountNo:   s.cfg.Payment.AccountNo,
		AccountName: s.cfg.Payment.AccountName,
		Amount:      amount,
		Reference:   reference,
		QRImageURL:  qrURL,
	}, nil
}

func (s *VietQRService) generate(ctx context.Context, amount int64, reference string) (string, error) {
	body, err := json.Marshal(vietQRRequest{
		AccountNo:   s.cfg.Payment.AccountNo,
		AccountName: s.cfg.Payment.AccountName,
		AcqID:       s.cfg.Payment.BankBIN,
		Amount:      amount,
		AddInfo:     reference,
		Template:    s.cfg.Payment.Template,
	})
	if err != nil {
		return "", &models.ProviderError{Provider: "vietqr", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/generate", bytes.NewReader(body))
	if err != nil {
		return "", &models.ProviderError{Provider: "vietqr", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &models.ProviderError{Provider: "vietqr", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &models.ProviderError{Provider: "vietqr", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var decoded vietQRResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &models.ProviderError{Provider: "vietqr", Err: fmt.Errorf("malformed response: %w", err)}
	}
	if decoded.Data == nil || decoded.Data.QRDataURL == "" {
		log.Printf("[VietQR] unexpected response shape: code=%s desc=%s", decoded.Code, decoded.Desc)
		return "", &models.ProviderError{Provider: "vietqr", Err: fmt.Errorf("response missing QR data (code=%s desc=%s)", decoded.Code, decoded.Desc)}
	}
	return decoded.Data.QRDataURL, nil
}
