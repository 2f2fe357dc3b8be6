package extraction

import "fmt"

const transactionSchema = `{ type: "income" | "expense", category: "string", ` +
	`subcategory: "string (optional)", amount: number (no currency symbol), ` +
	`currency: "string", date: "ISO format string", description: "short transaction note", ` +
	`paymentMethod: "cash" | "card" | "upi" | "bank_transfer" | "other", tags: ["string"] }`

// arraySchema tells the model to always report positive amounts; the sign is
// applied during normalization from the transaction type.
const arraySchema = `{ type: "income" | "expense", category: "string", ` +
	`subcategory: "string (optional)", amount: number (IMPORTANT: for expenses use positive ` +
	`numbers, for income use positive numbers - the system will handle the sign), ` +
	`currency: "string", date: "ISO format string", description: "short transaction note", ` +
	`paymentMethod: "cash" | "card" | "upi" | "bank_transfer" | "other", tags: ["string"] }`

// arrayPrompt asks the model for every transaction on a receipt page as a
// JSON array.
func arrayPrompt(pageText string) string {
	return fmt.Sprintf(
		"Extract all financial transactions from this receipt page text. "+
			"If there are multiple bills or transactions, return an array of JSON objects, "+
			"each matching this schema: %s. "+
			"IMPORTANT: Most receipts are expenses, so set type to \"expense\" unless it's "+
			"clearly income like a refund or payment received. "+
			"If there is only one transaction, return an array with a single object. "+
			"If no transaction is found, return an empty array []. "+
			"Do not return explanations or markdown, only the JSON array.\n\n"+
			"Receipt page text: %s",
		arraySchema, pageText)
}

// singlePrompt is the second attempt when the array prompt yields nothing:
// ask for one transaction as a bare object.
func singlePrompt(pageText string) string {
	return fmt.Sprintf(
		"Extract a single financial transaction from this receipt page text. "+
			"Return a JSON object matching this schema: %s. "+
			"If no transaction is found, return {}. "+
			"Do not return explanations or markdown, only the JSON object.\n\n"+
			"Receipt page text: %s",
		transactionSchema, pageText)
}
