package shopify

// CheckoutCreateMutation creates an empty checkout
const CheckoutCreateMutation = checkoutFields + `
mutation checkoutCreate($input: CheckoutCreateInput!) {
  checkoutCreate(input: $input) {
    checkout {
      ...CheckoutFields
    }
    checkoutUserErrors {
      field
      message
      code
    }
  }
}
`

// CheckoutLineItemsAddMutation adds variants to a checkout
const CheckoutLineItemsAddMutation = checkoutFields + `
mutation checkoutLineItemsAdd($checkoutId: ID!, $lineItems: [CheckoutLineItemInput!]!) {
  checkoutLineItemsAdd(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout {
      ...CheckoutFields
    }
    checkoutUserErrors {
      field
      message
      code
    }
  }
}
`

// CheckoutLineItemsUpdateMutation changes quantities of existing line items
const CheckoutLineItemsUpdateMutation = checkoutFields + `
mutation checkoutLineItemsUpdate($checkoutId: ID!, $lineItems: [CheckoutLineItemUpdateInput!]!) {
  checkoutLineItemsUpdate(checkoutId: $checkoutId, lineItems: $lineItems) {
    checkout {
      ...CheckoutFields
    }
    checkoutUserErrors {
      field
      message
      code
    }
  }
}
`

// CheckoutLineItemsRemoveMutation removes line items from a checkout
const CheckoutLineItemsRemoveMutation = checkoutFields + `
mutation checkoutLineItemsRemove($checkoutId: ID!, $lineItemIds: [ID!]!) {
  checkoutLineItemsRemove(checkoutId: $checkoutId, lineItemIds: $lineItemIds) {
    checkout {
      ...CheckoutFields
    }
    checkoutUserErrors {
      field
      message
      code
    }
  }
}
`

// LineItemInput adds a variant to a checkout
type LineItemInput struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// LineItemUpdateInput sets the quantity of an existing line item
type LineItemUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
