package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/facilops/facilops/pkg/eventbus"
)

func TestImportListeners_CleanRunLogsNoWarnings(t *testing.T) {
	// Progress and completion events must find subscribers; a clean run
	// through a real publisher may not emit unmatched-event warnings.
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)

	bus := eventbus.NewEventPublisher(log)
	RegisterImportListeners(bus, log)

	csvText := insuranceHeader +
		"ABC Electric,GL,Acme,GL-1,1,2025-01-01,2026-01-01,Valid\n" +
		"ABC Electric,GL,Acme,GL-2,1,2025-01-01,2026-01-01,Valid\n"

	svc := NewInsuranceImportService(&memPolicyRepo{}, contractorsWith("ABC Electric"), bus, log, 0)
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(csvText), int64(len(csvText)), "insurance.csv", uuid.New(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.NotContains(t, logBuffer.String(), "no matching subscribers")
}

func TestImportListeners_CompletionLogged(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.InfoLevel)

	bus := eventbus.NewEventPublisher(log)
	RegisterImportListeners(bus, log)

	csvText := "name,service_type\nABC Electric,Electrical\n"
	svc := NewContractorImportService(&memContractorRepo{}, bus, log, 0)
	res, err := svc.ImportCSV(context.Background(), strings.NewReader(csvText), int64(len(csvText)), "contractors.csv", uuid.New())
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	output := logBuffer.String()
	require.Contains(t, output, "import run completed")
	require.Contains(t, output, "outcome=success")
}
