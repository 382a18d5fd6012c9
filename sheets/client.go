package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// SheetsClient 정산 내역을 기록하는 Google Sheets API 클라이언트
type SheetsClient struct {
	service       *sheets.Service
	ctx           context.Context
	spreadsheetID string
}

// NewSheetsClient 새로운 Google Sheets 클라이언트를 생성합니다
func NewSheetsClient() (*SheetsClient, error) {
	ctx := context.Background()

	// Firebase 인증 정보 사용 (Google Cloud 프로젝트와 동일)
	credentialsJSON := os.Getenv(constants.EnvFirebaseCredentials)
	if credentialsJSON == "" {
		return nil, fmt.Errorf("Google credentials not available")
	}

	spreadsheetID := os.Getenv(constants.EnvBillSpreadsheetID)
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%s environment variable not set", constants.EnvBillSpreadsheetID)
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	utils.Info("Google Sheets client initialized successfully")
	return &SheetsClient{
		service:       service,
		ctx:           ctx,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ExportBill 확정된 정산서를 시트 끝에 한 줄씩 추가합니다.
// 첫 줄은 세션 요약, 이후 줄은 참가자별 금액입니다.
func (c *SheetsClient) ExportBill(session *models.Session, bill *models.FinalBill) error {
	rows := [][]interface{}{
		{
			session.StartTime.Format(constants.DateFormat),
			session.Title,
			session.Location,
			bill.TotalCourtPrice,
			bill.ShuttlesUsed,
			bill.PricePerShuttle,
			bill.TotalCost,
			string(bill.SplitMode),
		},
	}
	for _, item := range bill.Items {
		rows = append(rows, []interface{}{
			session.StartTime.Format(constants.DateFormat),
			session.Title,
			item.UserID,
			"",
			"",
			"",
			item.Amount,
			"",
		})
	}

	valueRange := &sheets.ValueRange{Values: rows}
	_, err := c.service.Spreadsheets.Values.Append(
		c.spreadsheetID,
		"A1",
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(c.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append bill rows: %w", err)
	}

	utils.Info("Exported bill for session %s (%d rows)", session.ID, len(rows))
	return nil
}
