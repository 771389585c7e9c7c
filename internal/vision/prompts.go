package vision

const promptRecognizeText = `You are an expert in analyzing images.
Extract and return all the text from the provided image.
Output only the extracted text with no additional commentary.`

const promptHotspotAnswers = `You are an expert in analyzing images of multiple-choice questions.
In the provided image, a grey-colored rectangle indicates the selected (correct) answer.
Extract the complete text of each statement along with its selected answer.
Output a JSON array of objects with exactly two keys:
  "statement": the full text of the statement,
  "answer": either "Yes" or "No".
Output ONLY valid JSON with no extra commentary.`

const promptDragDropColumns = `You are an expert in analyzing images of a drag-and-drop question.
This question image has multiple columns (possibly 3 or more), each with a heading (like "Applications", "Feature", "Service", etc.).
IMPORTANT: Extract ALL columns and their items completely, even if they appear in separate sections or different parts of the image.
Pay special attention to ensuring you capture ALL columns shown in the image.

Return the data in JSON with this structure:
{
  "columns": [
    {"heading": "<column heading>", "items": ["item1", "item2", "..."]},
    ...
  ]
}
Output ONLY valid JSON, no extra commentary.`

const promptDragDropPairs = `You are an expert in analyzing images of a drag-and-drop question.
This image shows the final matched pairs (or triplets) of the columns that appeared in the question image.
Each row includes all relevant columns, matched to the correct items.
Output a JSON array where each object has keys corresponding to the column headings.
Output ONLY valid JSON, no extra commentary.`

const promptDropdownRows = `You are an expert in analyzing an image that shows two columns with headers.
One column (the left) contains the statement header and statement text,
and the other column (the right) contains the options header and the dropdown options.
For each row in the image, extract:
  - "statement_header": the header for the statement column,
  - "statement": the statement text,
  - "options_header": the header for the options column,
  - "options": an array of the dropdown options.
Return a JSON array of objects with these four keys.
Output ONLY valid JSON, with no extra commentary.`

const promptDropdownAnswers = `You are an expert in analyzing an image that shows two columns with headers.
One column contains the statement header and statement text,
and the other column contains the answer header and the highlighted answer.
For each row, extract:
  - "statement_header": the header for the statement column,
  - "statement": the full text of the statement,
  - "answer_header": the header for the answer column,
  - "answer": the highlighted option text.
Return a JSON array of objects with these four keys.
Output ONLY valid JSON, with no extra commentary.`

const promptJustDropdownOptions = `You are an expert in analyzing images containing dropdown menus.
This image contains standalone dropdown menus with category or parameter labels.
Extract ALL dropdown options WITH their category/parameter labels.

Return ONLY a JSON array using this format:
[
  {
    "label": "parameter_name",
    "options": ["option1", "option2", "option3"]
  },
  {
    "label": "another_parameter",
    "options": ["choice1", "choice2"]
  }
]

Make sure to:
1. Include ALL dropdown menus visible in the image
2. Return ONLY valid JSON with no extra text or commentary
3. Use exact text for options and labels`

const promptPositionedDropdowns = `Please analyze this image and identify all dropdown menus. Look for EXPANDED dropdown menus that show lists of options, not just the trigger buttons.

For each dropdown menu you find, provide the coordinates for the ENTIRE VISIBLE DROPDOWN AREA (including all the options shown) in this EXACT XML format:

<QuestionOptions>
    <OptionSet index="1">
        <id>1</id>
        <x>412</x>
        <y>74</y>
        <width>185</width>
        <height>120</height>
        <Options>
            <Option>VIEW</Option>
            <Option selected="true">FUNCTION</Option>
            <Option>PROCEDURE</Option>
            <Option>TABLE</Option>
        </Options>
    </OptionSet>
</QuestionOptions>

CRITICAL XML FORMATTING RULES:
- ALL tags must be properly closed
- Root element must be <QuestionOptions>
- Each dropdown should be an <OptionSet> with index attribute
- Include id, x, y, width, height inside each OptionSet
- Each visible dropdown option should be wrapped in <Option> tags
- Extract the EXACT text visible in each dropdown option
- IMPORTANT: If an option appears SELECTED, HIGHLIGHTED, or in a DIFFERENT COLOR (like blue), add selected="true" attribute to that Option
- Return ONLY the XML structure, no additional text
- Ensure the XML is valid and well-formed

IMPORTANT DETECTION REQUIREMENTS:
- Detect the FULL expanded dropdown areas, not just small trigger buttons
- Include the entire rectangle containing all visible dropdown options
- Provide precise pixel coordinates for the complete dropdown region
- Extract each individual option text exactly as it appears in the dropdown
- CRITICAL: Identify which option is SELECTED/HIGHLIGHTED/BLUE and mark it with selected="true"
- Look for visual indicators like different background color, highlighting, or selection state`

const promptBoxCoordinates = `Please analyze this image and identify the RECTANGULAR BOXES/AREAS where answers should be placed.

Look specifically for:
1. The empty rectangle/box areas in the code snippet
2. Areas that look like input fields or blank spaces for answers
3. Rectangular regions that are visually distinct from the surrounding content

For each rectangular area you find, provide the information in this EXACT XML format:

<CoordinatesData>
<Box index="1">
<id>1</id>
<x>514</x>
<y>42</y>
<width>100</width>
<height>25</height>
</Box>
<Box index="2">
<id>2</id>
<x>514</x>
<y>130</y>
<width>100</width>
<height>25</height>
</Box>
</CoordinatesData>

IMPORTANT:
- Focus on finding the exact pixel coordinates of areas where answers should be filled in
- Pay special attention to empty brackets [] or blank areas in the code that appear to be placeholders
- The x,y coordinates should represent the top-left corner of each box
- Provide precise width and height measurements in pixels

Return ONLY the XML structure, no additional text.`

const promptPositionedPairs = `Please analyze this image and identify:

1. **SIDEBAR OPTIONS**: Look for any menu options, buttons, or selectable items on the left side of the interface.

2. **TEXT CONTENT IN BOXES**: For each rectangular box, identify what text content is displayed within that box.

For the sidebar options and text content, provide the information in this EXACT XML format:

<PositionedData>
<Column heading="Values">
<Item>DEFINE</Item>
<Item>EVALUATE</Item>
<Item>FILTER</Item>
<Item>SUMMARIZE</Item>
<Item>TABLE</Item>
</Column>
<AnswerPairs>
<Pair>
<Column name="Box 1" index="1" id="1">DEFINE</Column>
</Pair>
<Pair>
<Column name="Box 2" index="2" id="2">EVALUATE</Column>
</Pair>
</AnswerPairs>
</PositionedData>

IMPORTANT:
- Do NOT include coordinates (x, y, width, height) in this response
- Only extract the sidebar options and the text content visible in the boxes
- The text content between the Column tags should be the actual text you can read inside each rectangular box

Return ONLY the XML structure, no additional text.`
