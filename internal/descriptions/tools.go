package descriptions

// Tool descriptions with practical examples and use cases

const (
	PageStructureExtractDescription = `Extract the structural model of one PDF page as a unified JSON record.

**When to use:** Need to understand how a page is laid out rather than just what it says: form fields, checkboxes, tables, columns, labeled rows.

**Why it's useful:** Combines text geometry with raster analysis of the rendered page, so it finds structure (checkboxes, radio buttons, input boxes, table grids, visual rows) that text extraction alone cannot see.

**What it returns:** Text blocks with bounding boxes, rows typed by role (header, label-value, option-row, ...), row groups with inferred column grids, detected form controls with their states and associated labels, table cell structure with merged spans, and an overall page classification (form, table or text).

**Examples:**
• Form digitization: "Extract page 1 of application-form.pdf to map every field and its label"
• Table recovery: "Get the cell grid from page 3 of rates.pdf"
• Layout-aware reading: "Classify page 2 of report.pdf and list its columns"

**Common workflows:**
1. Form Filling: Extract structure → Match labels to controls → Generate fill plan
2. Document Understanding: Classify page → Pick extraction strategy per page type
3. Table Extraction: Extract structure → Read cell grid and spans → Export rows

**Best practices:** Validate the file first with pdf_validate_file; pages are 1-indexed.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to extract structure from any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and reports the page count so page numbers can be checked up front.

**Examples:**
• Batch processing safety: "Validate all PDFs in /forms/ before bulk structure extraction"
• Upload verification: "Check user-uploaded contract.pdf is valid before processing"

**Common workflows:**
1. Automated Processing: Validate → Extract if valid → Handle errors gracefully
2. Pre-processing Pipeline: Validate → Check page count → Extract each page

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`
)
