// Package sepa serialisiert Lastschriftläufe in das pain.008.001.02-Format
// (ISO 20022, Customer Direct Debit Initiation), das deutsche Banken im
// Online-Banking als Sammellastschrift entgegennehmen.
package sepa

import (
	"fmt"

	"github.com/beevik/etree"

	appsepa "github.com/budoverein/dojokasse/internal/application/sepa"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	pkgsepa "github.com/budoverein/dojokasse/pkg/sepa"
)

const painNamespace = "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02"

var _ appsepa.Pain008Builder = (*Pain008BuilderService)(nil)

// Pain008BuilderService baut das pain.008-Dokument eines Laufs. Alle Eingaben
// stammen aus den beim Anlegen eingefrorenen Posten; für denselben Lauf ist die
// Ausgabe byte-stabil (CreDtTm ist das Anlagedatum, nie die Systemuhr).
type Pain008BuilderService struct{}

// NewPain008Builder erzeugt den Builder.
func NewPain008Builder() *Pain008BuilderService {
	return &Pain008BuilderService{}
}

// Build serialisiert den Lauf: ein GrpHdr, ein PmtInf (SEPA/CORE/RCUR), ein
// DrctDbtTxInf je Posten in eingefrorener Reihenfolge.
func (s *Pain008BuilderService) Build(dojo *entity.Dojo, batch *entity.Batch, txs []entity.BatchTransaction) ([]byte, error) {
	if dojo.IBAN == "" || dojo.GlaeubigerID == "" {
		return nil, fmt.Errorf("pain008: dojo %s ohne IBAN oder Gläubiger-ID", dojo.ID)
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("pain008: lauf %s ohne posten", batch.Referenz)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	document := doc.CreateElement("Document")
	document.CreateAttr("xmlns", painNamespace)
	initn := document.CreateElement("CstmrDrctDbtInitn")

	ctrlSum := pkgsepa.FormatAmount(batch.Gesamtbetrag)
	nbOfTxs := fmt.Sprintf("%d", len(txs))

	grpHdr := initn.CreateElement("GrpHdr")
	grpHdr.CreateElement("MsgId").SetText(batch.Referenz)
	grpHdr.CreateElement("CreDtTm").SetText(batch.Erstellt.Format("2006-01-02T15:04:05"))
	grpHdr.CreateElement("NbOfTxs").SetText(nbOfTxs)
	grpHdr.CreateElement("CtrlSum").SetText(ctrlSum)
	grpHdr.CreateElement("InitgPty").CreateElement("Nm").SetText(dojo.AccountHolder())

	pmtInf := initn.CreateElement("PmtInf")
	pmtInf.CreateElement("PmtInfId").SetText(batch.Referenz + "-P1")
	pmtInf.CreateElement("PmtMtd").SetText("DD")
	pmtInf.CreateElement("NbOfTxs").SetText(nbOfTxs)
	pmtInf.CreateElement("CtrlSum").SetText(ctrlSum)

	pmtTpInf := pmtInf.CreateElement("PmtTpInf")
	pmtTpInf.CreateElement("SvcLvl").CreateElement("Cd").SetText("SEPA")
	pmtTpInf.CreateElement("LclInstrm").CreateElement("Cd").SetText("CORE")
	pmtTpInf.CreateElement("SeqTp").SetText("RCUR")

	pmtInf.CreateElement("ReqdColltnDt").SetText(batch.Einzugsdatum.Format("2006-01-02"))
	pmtInf.CreateElement("Cdtr").CreateElement("Nm").SetText(dojo.AccountHolder())
	pmtInf.CreateElement("CdtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(dojo.IBAN)
	if dojo.BIC != "" {
		pmtInf.CreateElement("CdtrAgt").CreateElement("FinInstnId").CreateElement("BIC").SetText(dojo.BIC)
	}
	pmtInf.CreateElement("ChrgBr").SetText("SLEV")

	othr := pmtInf.CreateElement("CdtrSchmeId").CreateElement("Id").
		CreateElement("PrvtId").CreateElement("Othr")
	othr.CreateElement("Id").SetText(dojo.GlaeubigerID)
	othr.CreateElement("SchmeNm").CreateElement("Prtry").SetText("SEPA")

	for _, t := range txs {
		txInf := pmtInf.CreateElement("DrctDbtTxInf")

		// EndToEndId ist die ID des eingefrorenen Postens: über Regenerationen
		// hinweg identisch und bankseitig bis zum Kontoauszug durchgereicht.
		txInf.CreateElement("PmtId").CreateElement("EndToEndId").SetText(t.ID)

		instdAmt := txInf.CreateElement("InstdAmt")
		instdAmt.CreateAttr("Ccy", "EUR")
		instdAmt.SetText(pkgsepa.FormatAmount(t.Betrag))

		mndt := txInf.CreateElement("DrctDbtTx").CreateElement("MndtRltdInf")
		mndt.CreateElement("MndtId").SetText(t.MandatsReferenz)
		mndt.CreateElement("DtOfSgntr").SetText(t.MandatsDatum.Format("2006-01-02"))

		txInf.CreateElement("DbtrAgt").CreateElement("FinInstnId").
			CreateElement("Othr").CreateElement("Id").SetText("NOTPROVIDED")
		txInf.CreateElement("Dbtr").CreateElement("Nm").SetText(t.Zahlername)
		txInf.CreateElement("DbtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(t.IBAN)
		txInf.CreateElement("RmtInf").CreateElement("Ustrd").SetText(t.Verwendungszweck)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
