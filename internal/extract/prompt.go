package extract

import "fmt"

const promptTemplate = "Analyze the following PDF content and extract the following information for each transaction:\n" +
	"- Price\n" +
	"- Product Name\n" +
	"- Transaction Date\n" +
	"- Category (e.g., Groceries, Utilities, Entertainment, etc.)\n\n" +
	"Provide **only** the extracted data in a structured CSV format with headers: Transaction Date, Product Name, Price, Category.\n" +
	"Do **not** include any additional text, explanations, or messages.\n\n" +
	"Here is an example of the desired CSV format:\n" +
	"```\n" +
	"Transaction Date,Product Name,Price,Category\n" +
	"2022-09-08,Example Product,100.00,Groceries\n" +
	"2022-09-09,Another Product,200.50,Utilities\n" +
	"```\n\n" +
	"Now, based on the PDF content below, provide the CSV data accordingly.\n\n" +
	"PDF Content:\n%s"

// BuildPrompt renders the extraction prompt for one statement's text.
func BuildPrompt(statementText string) string {
	return fmt.Sprintf(promptTemplate, statementText)
}
