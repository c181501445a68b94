package shopify

const imageFields = `
fragment ImageFields on Image {
  id
  url
  altText
  width
  height
}
`

const variantFields = imageFields + `
fragment VariantFields on ProductVariant {
  id
  title
  availableForSale
  image {
    ...ImageFields
  }
  price {
    amount
    currencyCode
  }
  compareAtPrice {
    amount
    currencyCode
  }
  selectedOptions {
    name
    value
  }
  product {
    id
    handle
  }
}
`

const productFields = variantFields + `
fragment ProductFields on Product {
  id
  handle
  title
  availableForSale
  description
  descriptionHtml
  options {
    id
    name
    values
  }
  images(first: 20) {
    edges {
      node {
        ...ImageFields
      }
    }
  }
  variants(first: 100) {
    edges {
      node {
        ...VariantFields
      }
    }
  }
}
`

const checkoutFields = variantFields + `
fragment CheckoutFields on Checkout {
  id
  webUrl
  paymentDue {
    amount
    currencyCode
  }
  totalTax {
    amount
    currencyCode
  }
  lineItemsSubtotalPrice {
    amount
    currencyCode
  }
  subtotalPrice {
    amount
    currencyCode
  }
  totalPrice {
    amount
    currencyCode
  }
  lineItems(first: 250) {
    edges {
      node {
        id
        title
        quantity
        variant {
          ...VariantFields
        }
      }
    }
  }
}
`

// ShopQuery fetches the shop name and money format
const ShopQuery = `
query getShop {
  shop {
    id
    name
    moneyFormat
  }
}
`

// CollectionsQuery fetches every collection visible to the storefront
const CollectionsQuery = imageFields + `
query getCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        handle
        title
        description
        descriptionHtml
        image {
          ...ImageFields
        }
      }
    }
  }
}
`

// ProductByHandleQuery fetches a single product by its handle
const ProductByHandleQuery = productFields + `
query getProductByHandle($handle: String!) {
  product(handle: $handle) {
    ...ProductFields
  }
}
`

// ProductsQuery fetches a sorted, optionally filtered page of products
const ProductsQuery = productFields + `
query getProducts($first: Int!, $sortKey: ProductSortKeys, $reverse: Boolean, $query: String) {
  products(first: $first, sortKey: $sortKey, reverse: $reverse, query: $query) {
    edges {
      node {
        ...ProductFields
      }
    }
  }
}
`

// CollectionProductsQuery fetches a sorted page of products within a collection
const CollectionProductsQuery = productFields + `
query getCollectionProducts($handle: String!, $first: Int!, $sortKey: ProductCollectionSortKeys, $reverse: Boolean) {
  collection(handle: $handle) {
    products(first: $first, sortKey: $sortKey, reverse: $reverse) {
      edges {
        node {
          ...ProductFields
        }
      }
    }
  }
}
`

// CheckoutQuery fetches a checkout by its id
const CheckoutQuery = checkoutFields + `
query getCheckout($id: ID!) {
  node(id: $id) {
    ... on Checkout {
      ...CheckoutFields
    }
  }
}
`
